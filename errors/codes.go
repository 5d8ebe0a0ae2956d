package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Exchange errors
const (
	// ErrCodeNetworkFailure indicates the standard transport reported failure.
	// It covers both network-level failures and non-2xx responses.
	ErrCodeNetworkFailure ErrorCode = "NETWORK_FAILURE"
	// ErrCodeHostError indicates the privileged host transport reported failure.
	ErrCodeHostError ErrorCode = "HOST_ERROR"
)

// Decoding errors
const (
	// ErrCodeParseError indicates a textual result was not well-formed JSON.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeEncodeError indicates a request value could not be encoded.
	ErrCodeEncodeError ErrorCode = "ENCODE_ERROR"
)

// Environment errors
const (
	// ErrCodeTransportUnavailable indicates a required host function is missing.
	ErrCodeTransportUnavailable ErrorCode = "TRANSPORT_UNAVAILABLE"
	// ErrCodeNoFileSelected indicates a file helper was given nothing to read.
	ErrCodeNoFileSelected ErrorCode = "NO_FILE_SELECTED"
	// ErrCodeInvalidInput indicates configuration or input failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

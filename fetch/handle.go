package fetch

// ResponseType hints how a Handle decodes a successful response body.
type ResponseType string

const (
	// ResponseDefault decodes the body as text.
	ResponseDefault ResponseType = ""
	// ResponseText decodes the body as text.
	ResponseText ResponseType = "text"
	// ResponseBlob keeps the body as raw bytes.
	ResponseBlob ResponseType = "blob"
	// ResponseJSON decodes the body as JSON. When the body is not valid JSON
	// the handle keeps the raw text so that ToStructured reports the failure.
	ResponseJSON ResponseType = "json"
)

// Handle is one in-flight exchange on the standard transport. It follows the
// XMLHttpRequest shape: configure, subscribe, send, then read the result from
// inside an observer. A Handle is used for exactly one exchange.
type Handle interface {
	// Open sets the method and target URL.
	Open(method, url string)
	// SetRequestHeader sets a request header.
	SetRequestHeader(name, value string)
	// SetWithCredentials controls whether ambient credentials are forwarded.
	SetWithCredentials(enabled bool)
	// WithCredentials reports the credential flag.
	WithCredentials() bool
	// SetResponseType sets the response decoding hint.
	SetResponseType(rt ResponseType)

	// OnLoad registers an observer fired once when the exchange succeeds.
	OnLoad(fn func())
	// OnError registers an observer fired once when the exchange fails.
	OnError(fn func())
	// Send starts the exchange. body may be nil.
	Send(body []byte)

	// Status returns the response status, 0 when no response was received.
	Status() int
	// Response returns the body as decoded for the response type:
	// string for text types, []byte for blob, a JSON value for json.
	Response() any
	// ResponseText returns the body as text.
	ResponseText() string
}

// HandleFactory allocates a fresh Handle per exchange.
type HandleFactory func() Handle

package hostfetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	apperrors "github.com/kbukum/reqkit/errors"
)

// HostError is the data-only form of a host failure. It holds copies of the
// allow-listed fields and nothing the host could attach behavior to.
type HostError struct {
	Status          int    `json:"status"`
	StatusText      string `json:"statusText,omitempty"`
	ReadyState      int    `json:"readyState,omitempty"`
	FinalURL        string `json:"finalUrl,omitempty"`
	ResponseHeaders string `json:"responseHeaders,omitempty"`
	ResponseText    string `json:"responseText,omitempty"`
	Message         string `json:"error,omitempty"`
}

// String returns the error as JSON.
func (e *HostError) String() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("%+v", *e)
	}
	return string(data)
}

// Error implements the error interface.
func (e *HostError) Error() string {
	return "hostfetch: host request failed: " + e.String()
}

// Fields returns the non-empty fields keyed by their JSON names.
func (e *HostError) Fields() map[string]any {
	m := map[string]any{"status": e.Status}
	add := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	if e.ReadyState != 0 {
		m["readyState"] = e.ReadyState
	}
	add("statusText", e.StatusText)
	add("finalUrl", e.FinalURL)
	add("responseHeaders", e.ResponseHeaders)
	add("responseText", e.ResponseText)
	add("error", e.Message)
	return m
}

// ToAppError maps a host error onto the shared AppError shape.
func ToAppError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	var hostErr *HostError
	if errors.As(err, &hostErr) {
		return apperrors.HostFailure(hostErr.Status, hostErr.Fields())
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.Internal(err)
}

// Sanitize copies the allow-listed data fields of a raw host error into a
// HostError. Values of the wrong kind, function members and every field not
// on the list are dropped. raw may be a Response, an error, a string, or any
// map or struct whose keys or field names match the host's field names
// (case-insensitively, json tags honored).
func Sanitize(raw any) *HostError {
	switch v := raw.(type) {
	case nil:
		return &HostError{}
	case *HostError:
		c := *v
		return &c
	case HostError:
		return &v
	case Response:
		return fromResponse(v)
	case *Response:
		return fromResponse(*v)
	case map[string]any:
		return fromMap(v)
	case error:
		return &HostError{Message: v.Error()}
	case string:
		return &HostError{Message: v}
	}
	if m, ok := toMap(raw); ok {
		return fromMap(m)
	}
	return &HostError{Message: fmt.Sprintf("unrecognized host error of type %T", raw)}
}

// toMap flattens a struct or a map of any key and value kind into a
// map[string]any. Function members are carried over and ignored by fromMap.
func toMap(raw any) (map[string]any, bool) {
	var m map[string]any
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return nil, false
	}
	if err := dec.Decode(raw); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

func fromResponse(r Response) *HostError {
	return &HostError{
		Status:          r.Status,
		StatusText:      r.StatusText,
		ReadyState:      r.ReadyState,
		FinalURL:        r.FinalURL,
		ResponseHeaders: r.ResponseHeaders,
		ResponseText:    r.ResponseText,
	}
}

func fromMap(m map[string]any) *HostError {
	e := &HostError{}
	e.Status, _ = intField(lookup(m, "status"))
	e.ReadyState, _ = intField(lookup(m, "readyState"))
	e.StatusText, _ = stringField(lookup(m, "statusText"))
	e.FinalURL, _ = stringField(lookup(m, "finalUrl"))
	e.ResponseHeaders, _ = stringField(lookup(m, "responseHeaders"))
	e.ResponseText, _ = stringField(lookup(m, "responseText"))
	e.Message, _ = stringField(lookup(m, "error"))
	return e
}

// lookup prefers an exact key and falls back to a case-insensitive match, so
// that Go field names such as FinalURL find finalUrl.
func lookup(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func intField(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func stringField(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

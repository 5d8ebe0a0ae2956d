package fetch

import (
	"encoding/json"
	"fmt"
)

// ToStructured returns raw as structured data. Text (string, []byte or
// json.RawMessage) is parsed as JSON and a malformed document yields a
// *ParseError. Any other value is taken to be structured already and is
// returned unchanged, so ToStructured(ToStructured(x)) equals ToStructured(x)
// for every structured value except a bare JSON string.
func ToStructured(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return parseJSON([]byte(v))
	case []byte:
		return parseJSON(v)
	case json.RawMessage:
		return parseJSON(v)
	default:
		return raw, nil
	}
}

func parseJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Raw: string(data), Err: err}
	}
	return v, nil
}

// DecodeJSON converts raw into T. Text is decoded directly; structured
// values are re-encoded first so that a decoded map can become a struct.
func DecodeJSON[T any](raw any) (T, error) {
	var out T
	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("fetch: re-encoding %T: %w", raw, err)
		}
		data = encoded
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &ParseError{Raw: string(data), Err: err}
	}
	return out, nil
}

package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kbukum/reqkit/future"
)

// GetBlob fetches url as raw bytes.
func (d *Dispatcher) GetBlob(ctx context.Context, url string) *future.Future[[]byte] {
	return future.Then(d.Send(ctx, BlobRequest(url)), asBytes)
}

// GetBlobWithCredentials fetches url as raw bytes, forwarding credentials.
func (d *Dispatcher) GetBlobWithCredentials(ctx context.Context, url string) *future.Future[[]byte] {
	return future.Then(d.Send(ctx, WithCredentials(BlobRequest(url))), asBytes)
}

// GetText fetches url as text.
func (d *Dispatcher) GetText(ctx context.Context, url string) *future.Future[string] {
	return future.Then(d.Send(ctx, TextRequest(url)), asString)
}

// GetTextWithCredentials fetches url as text, forwarding credentials.
func (d *Dispatcher) GetTextWithCredentials(ctx context.Context, url string) *future.Future[string] {
	return future.Then(d.Send(ctx, WithCredentials(TextRequest(url))), asString)
}

// GetJSON fetches url as structured data.
func (d *Dispatcher) GetJSON(ctx context.Context, url string) *future.Future[any] {
	return future.Then(d.Send(ctx, JSONRequest(url)), ToStructured)
}

// GetJSONWithCredentials fetches url as structured data, forwarding credentials.
func (d *Dispatcher) GetJSONWithCredentials(ctx context.Context, url string) *future.Future[any] {
	return future.Then(d.Send(ctx, WithCredentials(JSONRequest(url))), ToStructured)
}

// PostText posts a form-encoded text body and resolves with the response text.
func (d *Dispatcher) PostText(ctx context.Context, url, text string) *future.Future[string] {
	return future.Then(d.Send(ctx, FormRequest(url, text)), asString)
}

// PostTextWithCredentials is PostText forwarding credentials.
func (d *Dispatcher) PostTextWithCredentials(ctx context.Context, url, text string) *future.Future[string] {
	return future.Then(d.Send(ctx, WithCredentials(FormRequest(url, text))), asString)
}

// PostJSON posts v encoded as JSON and resolves with the structured response.
// An empty response body resolves with nil and a body that is not JSON
// resolves with its text. A value that cannot be encoded rejects with
// *EncodeError without sending.
func (d *Dispatcher) PostJSON(ctx context.Context, url string, v any) *future.Future[any] {
	return d.postJSON(ctx, url, v, false)
}

// PostJSONWithCredentials is PostJSON forwarding credentials.
func (d *Dispatcher) PostJSONWithCredentials(ctx context.Context, url string, v any) *future.Future[any] {
	return d.postJSON(ctx, url, v, true)
}

func (d *Dispatcher) postJSON(ctx context.Context, url string, v any, credentials bool) *future.Future[any] {
	body, err := json.Marshal(v)
	if err != nil {
		return future.Rejected[any](&EncodeError{Err: err})
	}
	b := JSONBodyRequest(url, body)
	if credentials {
		b = WithCredentials(b)
	}
	return future.Then(d.Send(ctx, b), postResult)
}

// postResult converts the response of a structured POST. The server has
// already applied the request, so a body that does not parse is not a
// failure.
func postResult(v any) (any, error) {
	var text string
	switch raw := v.(type) {
	case string:
		text = raw
	case []byte:
		text = string(raw)
	default:
		return v, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	out, err := ToStructured(text)
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return text, nil
	}
	return out, err
}

// GetJSONAs fetches url and decodes the response into T.
func GetJSONAs[T any](ctx context.Context, d *Dispatcher, url string) *future.Future[T] {
	return future.Then(d.Send(ctx, JSONRequest(url)), DecodeJSON[T])
}

func asBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("fetch: expected binary response, got %T", v)
	}
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("fetch: expected text response, got %T", v)
	}
}

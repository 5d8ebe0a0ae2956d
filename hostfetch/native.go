package hostfetch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// readyStateDone is the XMLHttpRequest DONE state reported on every settlement.
const readyStateDone = 4

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NativeHost returns a HostFunc performing requests with client. Like a
// userscript host it reports every HTTP response, whatever its status,
// through OnLoad and only transport failures through OnError. Its error
// value is a map holding data fields next to function members.
//
// Extra fields "user" and "password" set basic auth.
func NativeHost(client Doer) HostFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(d Details) {
		go runNative(client, d)
	}
}

func runNative(client Doer, d Details) {
	req, err := nativeRequest(d)
	if err != nil {
		d.OnError(nativeError(d.URL, err))
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		d.OnError(nativeError(d.URL, err))
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		d.OnError(nativeError(d.URL, err))
		return
	}

	finalURL := d.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	d.OnLoad(Response{
		Status:          resp.StatusCode,
		StatusText:      strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "),
		ReadyState:      readyStateDone,
		FinalURL:        finalURL,
		ResponseHeaders: formatHeaders(resp.Header),
		ResponseText:    string(data),
		Response:        decodeBody(d.ResponseType, data),
	})
}

func nativeRequest(d Details) (*http.Request, error) {
	var body io.Reader
	if d.Data != nil {
		body = bytes.NewReader(d.Data)
	}
	req, err := http.NewRequestWithContext(context.Background(), d.Method, d.URL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	if d.NoCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}
	user, _ := d.Extra["user"].(string)
	password, _ := d.Extra["password"].(string)
	if user != "" {
		req.SetBasicAuth(user, password)
	}
	return req, nil
}

// nativeError mirrors the shape a userscript host hands to onerror: data
// fields mixed with callable members.
func nativeError(target string, err error) map[string]any {
	raw := map[string]any{
		"status":          0,
		"statusText":      "",
		"readyState":      readyStateDone,
		"finalUrl":        target,
		"responseHeaders": "",
		"responseText":    "",
		"error":           err.Error(),
		"abort":           func() {},
	}
	raw["toString"] = func() string { return "[object Object]" }
	return raw
}

func decodeBody(responseType string, data []byte) any {
	switch responseType {
	case ResponseBlob, ResponseArrayBuffer:
		return data
	case ResponseJSON:
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			return v
		}
		return string(data)
	default:
		return string(data)
	}
}

// formatHeaders renders headers the way XMLHttpRequest.getAllResponseHeaders does.
func formatHeaders(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(strings.ToLower(k))
		b.WriteString(": ")
		b.WriteString(strings.Join(h[k], ", "))
		b.WriteString("\r\n")
	}
	return b.String()
}

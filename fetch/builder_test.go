package fetch_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/kbukum/reqkit/fetch"
	"github.com/kbukum/reqkit/fetch/fetchtest"
)

func TestBuilderVariants(t *testing.T) {
	tests := []struct {
		name        string
		builder     fetch.Builder
		method      string
		text        bool
		body        []byte
		contentType string
		respType    fetch.ResponseType
	}{
		{"blob", fetch.BlobRequest("/b"), http.MethodGet, false, nil, "", fetch.ResponseBlob},
		{"text", fetch.TextRequest("/t"), http.MethodGet, true, nil, "", fetch.ResponseText},
		{"json", fetch.JSONRequest("/j"), http.MethodGet, false, nil, "", fetch.ResponseJSON},
		{"form", fetch.FormRequest("/f", "a=1&b=2"), http.MethodPost, true, []byte("a=1&b=2"), "application/x-www-form-urlencoded", fetch.ResponseDefault},
		{"json body", fetch.JSONBodyRequest("/p", []byte(`{"x":1}`)), http.MethodPost, false, []byte(`{"x":1}`), "application/json", fetch.ResponseDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := fetchtest.NewHandle(fetchtest.Outcome{})
			d := tt.builder.Build(h)

			if d.Text != tt.text {
				t.Errorf("Text = %v, want %v", d.Text, tt.text)
			}
			if !bytes.Equal(d.Body, tt.body) {
				t.Errorf("Body = %q, want %q", d.Body, tt.body)
			}
			if h.Method() != tt.method {
				t.Errorf("method = %q, want %q", h.Method(), tt.method)
			}
			if h.URL() == "" {
				t.Error("builder must open the handle")
			}
			if got := h.Header("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if h.ResponseType() != tt.respType {
				t.Errorf("response type = %q, want %q", h.ResponseType(), tt.respType)
			}
			if h.CredentialCalls() != 0 {
				t.Errorf("plain builder must not touch the credential flag, got %d calls", h.CredentialCalls())
			}
		})
	}
}

func TestBuilderNilBodyMeansNoBody(t *testing.T) {
	h := fetchtest.NewHandle(fetchtest.Outcome{})
	if d := fetch.TextRequest("/t").Build(h); d.Body != nil {
		t.Errorf("expected nil body, got %q", d.Body)
	}
}

func TestWithCredentials(t *testing.T) {
	builders := map[string]func() fetch.Builder{
		"blob":      func() fetch.Builder { return fetch.BlobRequest("/b") },
		"text":      func() fetch.Builder { return fetch.TextRequest("/t") },
		"json":      func() fetch.Builder { return fetch.JSONRequest("/j") },
		"form":      func() fetch.Builder { return fetch.FormRequest("/f", "x") },
		"json body": func() fetch.Builder { return fetch.JSONBodyRequest("/p", []byte("{}")) },
	}

	for name, mk := range builders {
		t.Run(name, func(t *testing.T) {
			plain := mk().Build(fetchtest.NewHandle(fetchtest.Outcome{}))

			h := fetchtest.NewHandle(fetchtest.Outcome{})
			got := fetch.WithCredentials(mk()).Build(h)

			if h.CredentialCalls() != 1 {
				t.Errorf("expected the flag to be set once, got %d", h.CredentialCalls())
			}
			if !h.WithCredentials() {
				t.Error("expected the credential flag to be set")
			}
			if got.Text != plain.Text || !bytes.Equal(got.Body, plain.Body) {
				t.Errorf("descriptor changed: got %+v, want %+v", got, plain)
			}
		})
	}
}

func TestWithCredentialsTwice(t *testing.T) {
	h := fetchtest.NewHandle(fetchtest.Outcome{})
	fetch.WithCredentials(fetch.WithCredentials(fetch.TextRequest("/t"))).Build(h)
	if h.CredentialCalls() != 1 {
		t.Errorf("expected double decoration to set the flag once, got %d", h.CredentialCalls())
	}
	if !h.WithCredentials() {
		t.Error("expected the credential flag to be set")
	}
}

func TestBuilderFunc(t *testing.T) {
	b := fetch.BuilderFunc(func(h fetch.Handle) fetch.Descriptor {
		h.Open(http.MethodPut, "/items/1")
		return fetch.Descriptor{Text: true, Body: []byte("x")}
	})
	h := fetchtest.NewHandle(fetchtest.Outcome{})
	d := fetch.WithCredentials(b).Build(h)
	if h.Method() != http.MethodPut || h.URL() != "/items/1" {
		t.Errorf("unexpected open %s %s", h.Method(), h.URL())
	}
	if !d.Text || string(d.Body) != "x" {
		t.Errorf("unexpected descriptor %+v", d)
	}
}

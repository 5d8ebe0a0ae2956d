package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kbukum/reqkit/fetch"
	"github.com/kbukum/reqkit/fetch/fetchtest"
	"github.com/kbukum/reqkit/logger"
	"github.com/kbukum/reqkit/security"
	"github.com/kbukum/reqkit/security/tlstest"
)

func newTLSServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secure"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSend_TLSWithPrivateCA(t *testing.T) {
	srv := newTLSServer(t)
	ca := tlstest.WritePEM(t, filepath.Join(t.TempDir(), "ca.pem"), "CERTIFICATE", srv.Certificate().Raw)

	d, err := fetch.New(fetch.Config{TLS: &security.TLSConfig{CAFile: ca}}, fetch.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, err := fetchtest.Await(t, d.Send(context.Background(), fetch.TextRequest(srv.URL)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "secure" {
		t.Errorf("expected secure, got %#v", v)
	}
}

func TestSend_TLSUnknownAuthority(t *testing.T) {
	srv := newTLSServer(t)

	d, err := fetch.New(fetch.Config{}, fetch.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = fetchtest.Await(t, d.Send(context.Background(), fetch.TextRequest(srv.URL)))
	var se *fetch.StatusError
	if !errors.As(err, &se) || se.Status != 0 {
		t.Fatalf("expected StatusError{0}, got %v", err)
	}
}

func TestNew_TLSConfigError(t *testing.T) {
	_, err := fetch.New(fetch.Config{TLS: &security.TLSConfig{CAFile: "/nonexistent/ca.pem"}})
	if err == nil {
		t.Fatal("expected error for a missing CA file")
	}
}

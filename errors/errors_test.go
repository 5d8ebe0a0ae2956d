package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNetworkFailure, "failed", http.StatusBadGateway)
	if err.Code != ErrCodeNetworkFailure {
		t.Errorf("expected code %s, got %s", ErrCodeNetworkFailure, err.Code)
	}
	if err.Message != "failed" {
		t.Errorf("expected message 'failed', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, err.HTTPStatus)
	}
}

func TestNetworkFailure_KeepsStatus(t *testing.T) {
	err := NetworkFailure(404)
	if err.HTTPStatus != 404 {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["status"] != 404 {
		t.Errorf("expected status detail 404, got %v", err.Details["status"])
	}
	if !strings.Contains(err.Message, "404") {
		t.Errorf("message should mention the status, got %q", err.Message)
	}
}

func TestNetworkFailure_NoResponse(t *testing.T) {
	err := NetworkFailure(0)
	if err.HTTPStatus != 0 {
		t.Errorf("expected 0, got %d", err.HTTPStatus)
	}
	if strings.Contains(err.Message, "status") {
		t.Errorf("message should not mention a status, got %q", err.Message)
	}
}

func TestTransportUnavailable(t *testing.T) {
	err := TransportUnavailable("GM_xmlhttpRequest")
	if err.Code != ErrCodeTransportUnavailable {
		t.Errorf("expected TRANSPORT_UNAVAILABLE, got %s", err.Code)
	}
	if err.Message != "Cannot resolve function GM_xmlhttpRequest." {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestParseFailure_Unwrap(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := ParseFailure(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
	if !strings.Contains(err.Error(), "cause:") {
		t.Errorf("expected cause in error string, got %q", err.Error())
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := HostFailure(0, nil).
		WithDetail("status", 0).
		WithDetail("error", "refused")
	if len(err.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(err.Details))
	}
	if err.Details["error"] != "refused" {
		t.Errorf("expected error=refused, got %v", err.Details["error"])
	}
}

func TestAppError_JSONOmitsCause(t *testing.T) {
	err := EncodeFailure(fmt.Errorf("json: unsupported type: func()"))
	data, mErr := json.Marshal(err)
	if mErr != nil {
		t.Fatalf("marshal: %v", mErr)
	}
	if strings.Contains(string(data), "unsupported") {
		t.Errorf("cause should not be serialized, got %s", data)
	}
	if !strings.Contains(string(data), `"code":"ENCODE_ERROR"`) {
		t.Errorf("expected code in JSON, got %s", data)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NoFileSelected())
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeNoFileSelected {
		t.Errorf("expected NO_FILE_SELECTED, got %s", appErr.Code)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError true")
	}
}

func TestHasCode(t *testing.T) {
	err := Validation("bad url")
	if !HasCode(err, ErrCodeInvalidInput) {
		t.Error("expected INVALID_INPUT")
	}
	if HasCode(err, ErrCodeInternal) {
		t.Error("did not expect INTERNAL_ERROR")
	}
}

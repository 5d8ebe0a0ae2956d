package fetch

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestToStructured(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want any
	}{
		{"string object", `{"a":1}`, map[string]any{"a": float64(1)}},
		{"bytes array", []byte(`[true,null]`), []any{true, nil}},
		{"raw message", json.RawMessage(`"s"`), "s"},
		{"map passes through", map[string]any{"a": 1}, map[string]any{"a": 1}},
		{"number passes through", 3.5, 3.5},
		{"nil passes through", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToStructured(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToStructured_Malformed(t *testing.T) {
	_, err := ToStructured("{a:")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Raw != "{a:" {
		t.Errorf("expected raw text to be kept, got %q", parseErr.Raw)
	}
	if parseErr.Unwrap() == nil {
		t.Error("expected decoder error")
	}
}

func TestToStructured_Idempotent(t *testing.T) {
	once, err := ToStructured(`{"a":[1,2],"b":{"c":"d"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := ToStructured(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second conversion changed the value: %#v vs %#v", once, twice)
	}
}

func TestDecodeJSON(t *testing.T) {
	type item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	fromText, err := DecodeJSON[item](`{"id":1,"name":"a"}`)
	if err != nil || fromText != (item{1, "a"}) {
		t.Errorf("from text: %+v, %v", fromText, err)
	}

	fromMap, err := DecodeJSON[item](map[string]any{"id": float64(2), "name": "b"})
	if err != nil || fromMap != (item{2, "b"}) {
		t.Errorf("from map: %+v, %v", fromMap, err)
	}

	if _, err := DecodeJSON[item]("nope"); !IsParseError(err) {
		t.Errorf("expected ParseError, got %v", err)
	}

	if _, err := DecodeJSON[item](func() {}); err == nil || IsParseError(err) {
		t.Errorf("expected re-encoding error, got %v", err)
	}
}

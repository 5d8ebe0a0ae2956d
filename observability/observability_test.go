package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordExchangeStart(ctx, "xhr")
	metrics.RecordExchangeEnd(ctx, "xhr", "GET", OutcomeLoaded, 100*time.Millisecond)
	metrics.RecordError(ctx, "NETWORK_FAILURE", "fetch")
}

func TestSamplerFor(t *testing.T) {
	if samplerFor(1).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("expected always-on sampler for rate 1")
	}
	if samplerFor(0).Description() != sdktrace.NeverSample().Description() {
		t.Error("expected always-off sampler for rate 0")
	}
	if samplerFor(0.5).Description() != sdktrace.TraceIDRatioBased(0.5).Description() {
		t.Error("expected ratio sampler for rate 0.5")
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("reqkit", "1.2.3", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := res.Set().Value(attribute.Key(AttrServiceName))
	if !ok || v.AsString() != "reqkit" {
		t.Errorf("expected service.name reqkit, got %v", v)
	}
}

func TestStartExchange_Loaded(t *testing.T) {
	exporter := recordSpans(t)

	ex := StartExchange(context.Background(), nil, "xhr", "GET", "http://example.test/a", "req-1")
	ex.End(200, nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name != SpanExchange {
		t.Errorf("expected span %s, got %s", SpanExchange, s.Name)
	}
	if v, _ := attr(s.Attributes, AttrStatus); v.AsInt64() != 200 {
		t.Errorf("expected status 200, got %v", v)
	}
	if v, _ := attr(s.Attributes, AttrOutcome); v.AsString() != OutcomeLoaded {
		t.Errorf("expected outcome loaded, got %v", v)
	}
	if v, _ := attr(s.Attributes, AttrRequestID); v.AsString() != "req-1" {
		t.Errorf("expected request id, got %v", v)
	}
	if s.Status.Code == codes.Error {
		t.Error("loaded exchange must not carry an error status")
	}
}

func TestStartExchange_FailedEndsOnce(t *testing.T) {
	exporter := recordSpans(t)
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	ex := StartExchange(context.Background(), metrics, "host", "POST", "http://example.test/b", "req-2")
	ex.End(404, errors.New("status 404"))
	ex.End(200, nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status.Code)
	}
	if v, _ := attr(s.Attributes, AttrStatus); v.AsInt64() != 404 {
		t.Errorf("expected first End to win with 404, got %v", v)
	}
	if len(s.Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func TestExchange_Context(t *testing.T) {
	recordSpans(t)
	ex := StartExchange(context.Background(), nil, "xhr", "GET", "u", "id")
	defer ex.End(0, nil)
	if !trace.SpanFromContext(ex.Context()).SpanContext().IsValid() {
		t.Error("expected exchange context to carry a valid span")
	}
	if ex.Duration() < 0 {
		t.Error("expected non-negative duration")
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("t") == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter("m") == nil {
		t.Fatal("expected non-nil meter")
	}
}

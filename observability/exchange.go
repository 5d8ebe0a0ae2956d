package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Exchange outcomes recorded on spans and metrics.
const (
	OutcomeLoaded = "loaded"
	OutcomeFailed = "failed"
)

// Exchange tracks one HTTP exchange from dispatch to settlement.
type Exchange struct {
	Transport string
	Method    string
	URL       string
	RequestID string
	StartTime time.Time
	Metrics   *Metrics

	ctx  context.Context
	span trace.Span
	once sync.Once
}

// StartExchange opens a span for an exchange and records the start metric.
// If metrics is nil, metric recording is skipped.
func StartExchange(ctx context.Context, metrics *Metrics, transport, method, url, requestID string) *Exchange {
	ctx, span := StartSpan(ctx, SpanExchange, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrTransport, transport),
		attribute.String(AttrMethod, method),
		attribute.String(AttrURL, url),
		attribute.String(AttrRequestID, requestID),
	)
	if metrics != nil {
		metrics.RecordExchangeStart(ctx, transport)
	}
	return &Exchange{
		Transport: transport,
		Method:    method,
		URL:       url,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
		ctx:       ctx,
		span:      span,
	}
}

// Context returns the context carrying the exchange span.
func (e *Exchange) Context() context.Context {
	return e.ctx
}

// End closes the span and records the settled exchange. A nil err records a
// load, anything else a failure. Only the first call has an effect.
func (e *Exchange) End(status int, err error) {
	e.once.Do(func() {
		duration := time.Since(e.StartTime)
		outcome := OutcomeLoaded
		if err != nil {
			outcome = OutcomeFailed
			e.span.RecordError(err)
			e.span.SetStatus(codes.Error, err.Error())
			e.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		}
		e.span.SetAttributes(
			attribute.Int(AttrStatus, status),
			attribute.String(AttrOutcome, outcome),
			attribute.Int64(AttrDurationMs, duration.Milliseconds()),
		)
		e.span.End()

		if e.Metrics != nil {
			e.Metrics.RecordExchangeEnd(e.ctx, e.Transport, e.Method, outcome, duration)
		}
	})
}

// Duration returns the elapsed time since the exchange started.
func (e *Exchange) Duration() time.Duration {
	return time.Since(e.StartTime)
}

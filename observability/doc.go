// Package observability provides OpenTelemetry tracing and metrics for
// HTTP exchanges.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("reqkit"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("reqkit"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("reqkit"))
//
// Exchanges:
//
//	ex := observability.StartExchange(ctx, metrics, "xhr", "GET", url, requestID)
//	...
//	ex.End(status, err)
package observability

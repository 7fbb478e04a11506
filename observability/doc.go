// Package observability provides OpenTelemetry tracing and metrics for the
// storefront.
//
// InitTracer and InitMeter install OTLP/HTTP exporters as the global
// providers; Component does the same inside the component lifecycle. Every
// account-form operation is wrapped in an Operation, which opens a span named
// "authform.<operation>" and, when it ends, records the attempt on
// AuthMetrics:
//
//	ctx, op := observability.StartOperation(ctx, metrics, "sign_in")
//	defer func() { op.End(ctx, outcome, providerCode, err) }()
//
// Without Init* the global no-op providers are used and nothing is exported.
package observability

package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/storefront/logger"
)

// Operation tracks one account form operation: a span plus the attempt metric.
type Operation struct {
	name    string
	start   time.Time
	span    trace.Span
	metrics *AuthMetrics
}

// StartOperation opens the "authform.<name>" span. metrics may be nil.
func StartOperation(ctx context.Context, metrics *AuthMetrics, name string) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, "authform."+name, trace.WithAttributes(AttrOperation.String(name)))
	if sc := span.SpanContext(); sc.HasTraceID() {
		ctx = logger.ContextWithTraceID(ctx, sc.TraceID().String())
	}
	metrics.started(ctx)
	return ctx, &Operation{name: name, start: time.Now(), span: span, metrics: metrics}
}

// End closes the span and records the attempt.
func (o *Operation) End(ctx context.Context, outcome, code string, err error) {
	o.span.SetAttributes(AttrOutcome.String(outcome))
	if code != "" {
		o.span.SetAttributes(AttrProviderCode.String(code))
	}
	if err != nil && outcome == OutcomeFailure {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, code)
	}
	o.span.End()

	o.metrics.finished(ctx)
	o.metrics.RecordAttempt(ctx, o.name, outcome, code, time.Since(o.start))
}

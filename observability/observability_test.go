package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installTestProviders(t *testing.T) (*tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})
	return exporter, reader
}

func attemptPoints(t *testing.T, reader *sdkmetric.ManualReader) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "storefront.auth.attempts" {
				return m.Data.(metricdata.Sum[int64]).DataPoints
			}
		}
	}
	return nil
}

func TestOperation_SpanAndMetrics(t *testing.T) {
	exporter, reader := installTestProviders(t)
	metrics, err := NewAuthMetrics(Meter())
	if err != nil {
		t.Fatalf("NewAuthMetrics: %v", err)
	}

	ctx, op := StartOperation(context.Background(), metrics, "sign_in")
	if TraceID(ctx) == "" {
		t.Error("expected trace id in operation context")
	}
	op.End(ctx, OutcomeFailure, "auth/wrong-password", errors.New("wrong password"))

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "authform.sign_in" {
		t.Fatalf("unexpected spans %+v", spans)
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status)
	}
	found := false
	for _, kv := range spans[0].Attributes {
		if kv.Key == AttrProviderCode && kv.Value.AsString() == "auth/wrong-password" {
			found = true
		}
	}
	if !found {
		t.Errorf("provider code attribute missing: %v", spans[0].Attributes)
	}

	points := attemptPoints(t, reader)
	if len(points) != 1 || points[0].Value != 1 {
		t.Fatalf("unexpected attempt points %+v", points)
	}
	outcome, _ := points[0].Attributes.Value(attribute.Key("outcome"))
	if outcome.AsString() != OutcomeFailure {
		t.Errorf("unexpected outcome attribute %v", outcome)
	}
}

func TestOperation_CancelledIsNotAnError(t *testing.T) {
	exporter, _ := installTestProviders(t)
	ctx, op := StartOperation(context.Background(), nil, "federated_complete")
	op.End(ctx, OutcomeCancelled, "auth/popup-closed-by-user", errors.New("closed"))

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Status.Code == codes.Error {
		t.Errorf("cancellation must not mark the span failed: %+v", spans)
	}
}

func TestAuthMetrics_NilSafe(t *testing.T) {
	var m *AuthMetrics
	m.RecordAttempt(context.Background(), "sign_up", OutcomeSuccess, "", time.Millisecond)
}

func TestTraceID_NoSpan(t *testing.T) {
	if TraceID(context.Background()) != "" {
		t.Error("expected empty trace id")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("sampler(%v) = %s, want %s", tc.rate, got, tc.want)
		}
	}
	if got := sampler(0.5).Description(); got == "AlwaysOnSampler" || got == "AlwaysOffSampler" {
		t.Errorf("expected ratio sampler, got %s", got)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.MetricInterval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := (&Config{SampleRate: 2}).Validate(); err == nil {
		t.Error("expected sample rate error")
	}
	tc := cfg.TracerConfig("storefront", "1.0.0", "test")
	if tc.ServiceName != "storefront" || tc.Endpoint != cfg.Endpoint {
		t.Errorf("unexpected tracer config %+v", tc)
	}
}

func TestComponent_StartStop(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	c := NewComponent(Config{Enabled: true, Endpoint: "127.0.0.1:1", Insecure: true}, "storefront", "test", "test")
	ctx := context.Background()
	if h := c.Health(ctx); h.Status == "healthy" {
		t.Error("expected non-healthy before start")
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := c.Health(ctx); h.Status != "healthy" {
		t.Errorf("expected healthy, got %+v", h)
	}
	stopCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	// the collector is unreachable, so flushing may fail; Stop must return
	_ = c.Stop(stopCtx)
}

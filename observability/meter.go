package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/storefront/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the global meter provider.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns the storefront meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Attempt outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeFailure   = "failure"
	OutcomeCancelled = "cancelled"
	OutcomeRejected  = "rejected"
)

// AuthMetrics holds the account form instruments.
type AuthMetrics struct {
	attempts metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

// NewAuthMetrics creates the instruments on meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	attempts, err := meter.Int64Counter("storefront.auth.attempts",
		metric.WithDescription("Account form operations by operation, outcome and provider code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storefront.auth.attempts counter: %w", err)
	}
	duration, err := meter.Float64Histogram("storefront.auth.duration",
		metric.WithDescription("Duration of account form operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storefront.auth.duration histogram: %w", err)
	}
	inFlight, err := meter.Int64UpDownCounter("storefront.auth.in_flight",
		metric.WithDescription("Account form operations currently waiting on the identity provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storefront.auth.in_flight counter: %w", err)
	}
	return &AuthMetrics{attempts: attempts, duration: duration, inFlight: inFlight}, nil
}

// RecordAttempt counts one finished operation. code is the provider code
// ("" when the provider was not involved or succeeded).
func (m *AuthMetrics) RecordAttempt(ctx context.Context, operation, outcome, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
		attribute.String("code", code),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *AuthMetrics) started(ctx context.Context) {
	if m != nil {
		m.inFlight.Add(ctx, 1)
	}
}

func (m *AuthMetrics) finished(ctx context.Context) {
	if m != nil {
		m.inFlight.Add(ctx, -1)
	}
}

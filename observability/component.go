package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/storefront/component"
)

// Component installs the OTLP tracer and meter providers for the lifetime
// of the application.
type Component struct {
	cfg                   Config
	service, version, env string
	tp                    *sdktrace.TracerProvider
	mp                    *sdkmetric.MeterProvider
}

var _ component.Component = (*Component)(nil)

// NewComponent creates the component; nothing is exported until Start.
func NewComponent(cfg Config, service, version, env string) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, service: service, version: version, env: env}
}

func (c *Component) Name() string { return "observability" }

// Start creates the exporters. Exporters connect lazily, so an unreachable
// collector does not fail startup.
func (c *Component) Start(ctx context.Context) error {
	tp, err := InitTracer(ctx, c.cfg.TracerConfig(c.service, c.version, c.env))
	if err != nil {
		return fmt.Errorf("observability start: %w", err)
	}
	mp, err := InitMeter(ctx, c.cfg.MeterConfig(c.service, c.version, c.env))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("observability start: %w", err)
	}
	c.tp, c.mp = tp, mp
	return nil
}

// Stop flushes and shuts down both providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
	}
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func (c *Component) Health(context.Context) component.Health {
	if c.tp == nil {
		return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: "exporters not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the startup log line.
func (c *Component) Describe() component.Description {
	return component.Description{
		Type:    "otlp",
		Details: fmt.Sprintf("%s sample=%.2f", c.cfg.Endpoint, c.cfg.SampleRate),
	}
}

package bootstrap

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/storefront/component"
	"github.com/kbukum/storefront/config"
	"github.com/kbukum/storefront/logger"
)

type testConfig struct {
	config.ServiceConfig
}

func newTestConfig() *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: "storefront", Version: "1.2.3", Environment: "development"}}
}

type mockComponent struct {
	name     string
	startErr error
	health   component.Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return nil
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	if m.health.Status == "" {
		return component.Health{Name: m.name, Status: component.StatusHealthy}
	}
	return m.health
}

func newTestApp(t *testing.T) *App[*testConfig] {
	t.Helper()
	app, err := NewApp(newTestConfig(), WithLogger(logger.Nop()), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "storefront" || app.Version != "1.2.3" {
		t.Errorf("unexpected identity %s %s", app.Name, app.Version)
	}
	if app.gracefulTimeout != time.Second {
		t.Errorf("expected graceful timeout option to apply, got %v", app.gracefulTimeout)
	}
	if !app.Cfg.Debug {
		t.Error("expected defaults to be applied")
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := newTestConfig()
	cfg.Name = ""
	if _, err := NewApp(cfg, WithLogger(logger.Nop())); err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunLifecycleOrder(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "redis", events: &events})
	_ = app.RegisterComponent(&mockComponent{name: "server", events: &events})

	app.OnReady(func(ctx context.Context) error { events = append(events, "ready:"+app.Cfg.Name); return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"start:redis", "start:server", "ready:storefront",
		"stop:server", "stop:redis",
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v\nwant %v", events, want)
	}
}

func TestRunReadyHookErrorStopsStartedComponents(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "redis", events: &events})
	app.OnReady(func(ctx context.Context) error {
		return errors.New("wiring failed")
	})

	err := app.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "onReady hook failed") || !strings.Contains(err.Error(), "wiring failed") {
		t.Fatalf("expected ready hook error, got %v", err)
	}
	if events[len(events)-1] != "stop:redis" {
		t.Errorf("expected redis to be stopped after failure, got %v", events)
	}
}

func TestRunComponentStartError(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "redis", events: &events, startErr: errors.New("refused")})

	if err := app.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "initialization failed") {
		t.Fatalf("expected initialization error, got %v", err)
	}
}

func TestHookErrorStopsExecution(t *testing.T) {
	calls := 0
	err := runHooks(context.Background(), []Hook{
		func(ctx context.Context) error { calls++; return errors.New("first") },
		func(ctx context.Context) error { calls++; return nil },
	})
	if err == nil || calls != 1 {
		t.Errorf("expected first hook error to stop execution, calls=%d err=%v", calls, err)
	}
}

func TestReadyCheck(t *testing.T) {
	var events []string
	app := newTestApp(t)
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Fatalf("empty registry should be ready: %v", err)
	}
	_ = app.RegisterComponent(&mockComponent{
		name:   "redis",
		events: &events,
		health: component.Health{Name: "redis", Status: component.StatusUnhealthy, Message: "refused"},
	})
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "redis=unhealthy(refused)") {
		t.Errorf("unexpected ready check error %v", err)
	}
}

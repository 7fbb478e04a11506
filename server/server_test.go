package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/storefront/component"
	"github.com/kbukum/storefront/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1", GinMode: gin.TestMode}
	cfg.ApplyDefaults()
	cfg.Port = 0
	return New(cfg, logger.Nop())
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.MaxBodySize != "64KB" || cfg.GinMode != gin.ReleaseMode || cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	cfg.GinMode = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid gin mode to fail")
	}
	cfg = Config{Port: 70000, GinMode: gin.TestMode}
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid port to fail")
	}
}

func TestDefaultEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.ApplyMiddleware()
	checker := func(ctx context.Context) []component.Health {
		return []component.Health{{Name: "redis", Status: component.StatusDegraded}}
	}
	s.RegisterDefaultEndpoints("storefront", checker)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "degraded" || body["service"] != "storefront" {
		t.Errorf("unexpected health body %v", body)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected middleware to set request id")
	}

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/info", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /info, got %d", rr.Code)
	}
}

func TestReadinessUnhealthy(t *testing.T) {
	s := newTestServer(t)
	s.RegisterDefaultEndpoints("storefront", func(ctx context.Context) []component.Health {
		return []component.Health{{Name: "redis", Status: component.StatusUnhealthy}}
	})

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/ready", http.NoBody))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestComponentLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.GinEngine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	comp := NewComponent(s)

	ctx := context.Background()
	if comp.Health(ctx).Status != component.StatusUnhealthy {
		t.Error("expected unhealthy before start")
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = comp.Stop(context.Background()) })

	resp, err := http.Get("http://" + s.Addr() + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if comp.Health(ctx).Status != component.StatusHealthy {
		t.Error("expected healthy after start")
	}
	if comp.Describe().Type != "server" {
		t.Error("unexpected description")
	}
}

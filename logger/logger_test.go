package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(level string) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := &Config{Level: level, Format: FormatJSON}
	return NewWithWriter(cfg, "storefront", buf), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_JSONIncludesServiceAndFields(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.Info("signed in", Fields(FieldMode, "sign_in", FieldOperation, "submit_sign_in"))

	m := decodeLine(t, buf)
	if m["message"] != "signed in" {
		t.Errorf("message = %v", m["message"])
	}
	if m[FieldService] != "storefront" {
		t.Errorf("service = %v", m[FieldService])
	}
	if m[FieldMode] != "sign_in" {
		t.Errorf("mode = %v", m[FieldMode])
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	l, buf := newJSONLogger("warn")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newJSONLogger("loud")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWithContext_AttachesIDs(t *testing.T) {
	l, buf := newJSONLogger("info")
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithFormID(ctx, "form-9")

	l.WithContext(ctx).Info("hello")
	m := decodeLine(t, buf)
	if m[FieldRequestID] != "req-1" {
		t.Errorf("request_id = %v", m[FieldRequestID])
	}
	if m[FieldFormID] != "form-9" {
		t.Errorf("form_id = %v", m[FieldFormID])
	}
	if _, ok := m[FieldTraceID]; ok {
		t.Error("trace_id should be absent when not in context")
	}
}

func TestWithComponentAndFields(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.WithComponent("authform").WithFields(ErrorFields("sign_in", errors.New("boom"))).Error("failed")

	m := decodeLine(t, buf)
	if m[FieldComponent] != "authform" {
		t.Errorf("component = %v", m[FieldComponent])
	}
	if m[FieldError] != "boom" || m[FieldOperation] != "sign_in" {
		t.Errorf("unexpected fields %v", m)
	}
	if l.service != "storefront" {
		t.Error("service should be preserved")
	}
}

func TestConsoleFormat_TagsService(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "storefront", buf)
	l.Info("ready")
	out := buf.String()
	if !strings.Contains(out, "[STO][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Error("nothing happens")
}

func TestGlobalLogger(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}

	l := Init(Config{Format: FormatJSON}, "custom")
	if GetGlobalLogger() != l {
		t.Error("Init should set the global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != FormatConsole || cfg.Output != "stdout" || !cfg.Timestamp {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: FormatJSON}, false},
		{"bad level", Config{Level: "verbose", Format: FormatJSON}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected non-string keys and dangling values to be dropped, got %v", m)
	}

	ef := ErrorFields("sign_in", errors.New("x"))
	if ef[FieldOperation] != "sign_in" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields %v", ef)
	}

	df := DurationFields("sign_in", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration %v", df[FieldDuration])
	}
}

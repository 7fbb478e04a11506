package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type testSection struct {
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Identity      testSection `mapstructure:"identity"`
	Hosts         []string    `mapstructure:"hosts"`
	Ignored       string      `mapstructure:"-"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" || !cfg.Debug {
		t.Errorf("expected development with debug, got %+v", cfg)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults, got %+v", cfg.Logging)
	}

	prod := ServiceConfig{Name: "svc", Environment: "production"}
	prod.ApplyDefaults()
	if prod.Debug {
		t.Error("expected debug=false for production")
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    ServiceConfig
		errMsg string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	got := Keys(&testConfig{})
	want := []string{
		"name", "environment", "version", "debug",
		"logging.level", "logging.format", "logging.output", "logging.no_color", "logging.timestamp", "logging.caller",
		"identity.api_key", "identity.timeout", "hosts",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v\nwant %v", got, want)
	}
	if Keys("not a struct") != nil {
		t.Error("expected nil keys for non-struct")
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("identity.api_key"); got != "IDENTITY_API_KEY" {
		t.Errorf("EnvName = %q", got)
	}
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: storefront
environment: staging
identity:
  api_key: from-file
  timeout: 5s
hosts: [a, b]
`)
	t.Setenv("IDENTITY_API_KEY", "from-env")
	t.Setenv("NAME", "")
	t.Setenv("ENVIRONMENT", "")

	var cfg testConfig
	if err := LoadConfig("storefront", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "storefront" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Identity.APIKey != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Identity.APIKey)
	}
	if cfg.Identity.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Identity.Timeout)
	}
	if !reflect.DeepEqual(cfg.Hosts, []string{"a", "b"}) {
		t.Errorf("unexpected hosts %v", cfg.Hosts)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "IDENTITY_TIMEOUT=250ms\n")
	t.Cleanup(func() { os.Unsetenv("IDENTITY_TIMEOUT") })

	var cfg testConfig
	if err := LoadConfig("storefront", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Identity.Timeout != 250*time.Millisecond {
		t.Errorf("expected timeout from .env, got %v", cfg.Identity.Timeout)
	}
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg,
		WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/storefront/config.yml": true,
		"../.env":                     true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("storefront", LoaderConfig{})
	if files.ConfigFile != "./cmd/storefront/config.yml" {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != "../.env" {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("storefront", LoaderConfig{ConfigFile: "x.yml", EnvFile: "y.env"})
	if explicit.ConfigFile != "x.yml" || explicit.EnvFile != "y.env" {
		t.Errorf("explicit paths should win, got %+v", explicit)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}

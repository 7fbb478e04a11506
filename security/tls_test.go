package security

import (
	"crypto/tls"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTLSConfig_BuildDisabled(t *testing.T) {
	for _, cfg := range []*TLSConfig{nil, {}} {
		got, err := cfg.Build()
		if err != nil || got != nil {
			t.Errorf("Build(%+v) = %v, %v; want nil, nil", cfg, got, err)
		}
	}
}

func TestTLSConfig_BuildOptions(t *testing.T) {
	got, err := (&TLSConfig{SkipVerify: true, ServerName: "identity.local", MinVersion: "1.3"}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !got.InsecureSkipVerify || got.ServerName != "identity.local" || got.MinVersion != tls.VersionTLS13 {
		t.Errorf("unexpected config %+v", got)
	}

	def, _ := (&TLSConfig{ServerName: "x"}).Build()
	if def.MinVersion != tls.VersionTLS12 {
		t.Errorf("expected TLS 1.2 default, got %x", def.MinVersion)
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    TLSConfig
		errMsg string
	}{
		{"empty", TLSConfig{}, ""},
		{"cert without key", TLSConfig{CertFile: "c.pem"}, "both cert_file and key_file"},
		{"key without cert", TLSConfig{KeyFile: "k.pem"}, "both cert_file and key_file"},
		{"bad version", TLSConfig{MinVersion: "1.0"}, "unsupported min_version"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestTLSConfig_CAFileErrors(t *testing.T) {
	if _, err := (&TLSConfig{CAFile: "/nonexistent/ca.pem"}).Build(); err == nil {
		t.Error("expected error for missing CA file")
	}
	bad := filepath.Join(t.TempDir(), "bad.pem")
	if err := os.WriteFile(bad, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := (&TLSConfig{CAFile: bad}).Build(); err == nil {
		t.Error("expected error for invalid CA content")
	}
}

func TestTLSConfig_TrustsConfiguredCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	caPath := filepath.Join(t.TempDir(), "ca.pem")
	block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(caPath, block, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := (&TLSConfig{CAFile: caPath}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: cfg}}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("request with configured CA failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("unexpected status %d", resp.StatusCode)
	}

	if _, err := http.Get(srv.URL); err == nil {
		t.Error("expected default client to reject the test certificate")
	}
}

package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	apperrors "github.com/kbukum/storefront/errors"
)

func TestClient_JSONBodyAndAPIKeyQuery(t *testing.T) {
	var gotKey, gotPath, gotCT string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"idToken":"tok"}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL + "/v1/", Auth: APIKeyAuthQuery("secret", "key")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/accounts:signUp",
		Body:   map[string]string{"email": "a@b.co"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotKey != "secret" || gotPath != "/v1/accounts:signUp" || gotCT != "application/json" {
		t.Errorf("unexpected request key=%q path=%q ct=%q", gotKey, gotPath, gotCT)
	}
	if gotBody["email"] != "a@b.co" {
		t.Errorf("unexpected body %v", gotBody)
	}
	var out struct{ IDToken string }
	if err := resp.JSON(&out); err != nil || out.IDToken != "tok" {
		t.Errorf("JSON decode: %v %+v", err, out)
	}
}

func TestClient_FormBodyAndBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "shh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Content-Type") != "application/x-www-form-urlencoded" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = r.ParseForm()
		_, _ = io.WriteString(w, r.PostForm.Get("code"))
	}))
	defer srv.Close()

	c, _ := New(Config{})
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   srv.URL + "/token",
		Body:   url.Values{"code": {"abc"}},
		Auth:   BasicAuth("client", "shh"),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(resp.Body) != "abc" {
		t.Errorf("unexpected body %q", resp.Body)
	}
}

func TestClient_ErrorStatusKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"EMAIL_EXISTS"}}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	herr, ok := AsError(err)
	if !ok || herr.Code != ErrCodeValidation || herr.StatusCode != 400 {
		t.Fatalf("unexpected error %#v", err)
	}
	if string(herr.Body) != `{"error":{"message":"EMAIL_EXISTS"}}` || resp == nil {
		t.Errorf("body not preserved: %q", herr.Body)
	}
}

func TestClient_ConnectionAndTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Errorf("expected timeout, got %v", err)
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()
	c2, _ := New(Config{BaseURL: addr, Timeout: time.Second})
	_, err = c2.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestClient_DefaultHeaders(t *testing.T) {
	var ua, custom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		custom = r.Header.Get("X-Client")
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Headers: map[string]string{"X-Client": "default"}})
	_, err := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/",
		Headers: map[string]string{"X-Client": "override"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if ua != defaultUserAgent || custom != "override" {
		t.Errorf("ua=%q custom=%q", ua, custom)
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{401, ErrCodeAuth, false},
		{403, ErrCodeAuth, false},
		{404, ErrCodeNotFound, false},
		{429, ErrCodeRateLimit, true},
		{422, ErrCodeValidation, false},
		{503, ErrCodeServer, true},
	}
	if ClassifyStatusCode(204, nil) != nil {
		t.Error("2xx must not classify as error")
	}
	for _, tc := range tests {
		e := ClassifyStatusCode(tc.status, nil)
		if e.Code != tc.code || e.Retryable != tc.retryable {
			t.Errorf("status %d: got %s retryable=%v", tc.status, e.Code, e.Retryable)
		}
	}
}

func TestError_AppError(t *testing.T) {
	timeout := NewTimeoutError(context.DeadlineExceeded).AppError("identity")
	if timeout.Code != apperrors.ErrCodeTimeout {
		t.Errorf("expected timeout code, got %s", timeout.Code)
	}
	server := ClassifyStatusCode(500, nil).AppError("identity")
	if server.Code != apperrors.ErrCodeExternalService {
		t.Errorf("expected external service code, got %s", server.Code)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}

package toolkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/storefront/identity"
)

type recorded struct {
	path string
	key  string
	body map[string]any
}

func newServer(t *testing.T, handler func(method string, body map[string]any) (int, any)) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		method := strings.TrimPrefix(r.URL.Path, "/v1/accounts:")
		calls = append(calls, recorded{path: r.URL.Path, key: r.URL.Query().Get("key"), body: body})
		status, out := handler(method, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{APIKey: "web-key", BaseURL: srv.URL + "/v1"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, &calls
}

func apiError(reason string) (int, any) {
	return http.StatusBadRequest, map[string]any{"error": map[string]any{"code": 400, "message": reason}}
}

func TestClient_SignUp(t *testing.T) {
	c, calls := newServer(t, func(method string, body map[string]any) (int, any) {
		return http.StatusOK, map[string]any{
			"idToken": "id", "refreshToken": "rt", "expiresIn": "3600",
			"localId": "uid-1", "email": body["email"],
		}
	})
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	s, err := c.SignUp(context.Background(), "a@b.co", "secret1", "Ada")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if s.UserID != "uid-1" || s.IDToken != "id" || !s.NewUser || s.DisplayName != "Ada" {
		t.Errorf("unexpected session %+v", s)
	}
	if !s.ExpiresAt.Equal(fixed.Add(time.Hour)) {
		t.Errorf("unexpected expiry %v", s.ExpiresAt)
	}
	got := (*calls)[0]
	if got.path != "/v1/accounts:signUp" || got.key != "web-key" {
		t.Errorf("unexpected call %+v", got)
	}
	if got.body["displayName"] != "Ada" || got.body["returnSecureToken"] != true {
		t.Errorf("unexpected body %v", got.body)
	}
}

func TestClient_ErrorTranslation(t *testing.T) {
	tests := []struct {
		reason string
		code   string
	}{
		{"EMAIL_EXISTS", identity.CodeEmailAlreadyInUse},
		{"EMAIL_NOT_FOUND", identity.CodeUserNotFound},
		{"INVALID_PASSWORD", identity.CodeWrongPassword},
		{"INVALID_LOGIN_CREDENTIALS", identity.CodeInvalidCredential},
		{"WEAK_PASSWORD : Password should be at least 6 characters", identity.CodeWeakPassword},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access temporarily disabled", identity.CodeTooManyRequests},
		{"INVALID_PHONE_NUMBER : Invalid format.", identity.CodeInvalidPhoneNumber},
		{"OPERATION_NOT_ALLOWED", identity.CodeOperationNotAllowed},
		{"SOMETHING_NEW", "auth/something-new"},
	}
	for _, tc := range tests {
		t.Run(tc.reason, func(t *testing.T) {
			c, _ := newServer(t, func(string, map[string]any) (int, any) { return apiError(tc.reason) })
			_, err := c.SignInWithPassword(context.Background(), "a@b.co", "pw")
			if got := identity.CodeOf(err); got != tc.code {
				t.Errorf("code = %q, want %q (err %v)", got, tc.code, err)
			}
		})
	}
}

func TestClient_ServerAndNetworkErrors(t *testing.T) {
	c, _ := newServer(t, func(string, map[string]any) (int, any) {
		return http.StatusInternalServerError, map[string]any{"error": map[string]any{"message": "BACKEND_ERROR"}}
	})
	if err := c.SendPasswordReset(context.Background(), "a@b.co"); identity.CodeOf(err) != identity.CodeInternalError {
		t.Errorf("expected internal error, got %v", err)
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	offline, err := New(Config{APIKey: "k", BaseURL: base, Timeout: time.Second}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = offline.SignInWithPassword(context.Background(), "a@b.co", "pw")
	if identity.CodeOf(err) != identity.CodeNetworkRequestFailed {
		t.Errorf("expected network-request-failed, got %v", err)
	}
}

func TestClient_PhoneVerification(t *testing.T) {
	c, calls := newServer(t, func(method string, body map[string]any) (int, any) {
		switch method {
		case "sendVerificationCode":
			return http.StatusOK, map[string]any{"sessionInfo": "session-1"}
		case "signInWithPhoneNumber":
			if body["code"] != "123456" {
				return apiError("INVALID_CODE")
			}
			return http.StatusOK, map[string]any{"idToken": "id", "localId": "uid", "phoneNumber": "+15550100"}
		}
		return apiError("UNEXPECTED")
	})

	pending, err := c.SendVerificationCode(context.Background(), "+15550100", "captcha-token")
	if err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}
	if pending.Handle() != "session-1" {
		t.Errorf("unexpected handle %q", pending.Handle())
	}
	if (*calls)[0].body["recaptchaToken"] != "captcha-token" {
		t.Errorf("challenge token not forwarded: %v", (*calls)[0].body)
	}

	_, err = c.ResumeVerification("session-1").Confirm(context.Background(), "000000")
	if identity.CodeOf(err) != identity.CodeInvalidVerificationCode {
		t.Errorf("expected invalid code, got %v", err)
	}
	s, err := c.ResumeVerification(pending.Handle()).Confirm(context.Background(), "123456")
	if err != nil || s.PhoneNumber != "+15550100" {
		t.Fatalf("Confirm: %+v %v", s, err)
	}
	if (*calls)[2].body["sessionInfo"] != "session-1" {
		t.Errorf("confirm must reuse the stored session info, got %v", (*calls)[2].body)
	}
}

func TestClient_SignInWithIdP(t *testing.T) {
	c, calls := newServer(t, func(string, map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"idToken": "id", "localId": "uid", "email": "g@example.com", "isNewUser": true}
	})
	s, err := c.SignInWithIdP(context.Background(), identity.IdPCredential{
		ProviderID: "google.com",
		IDToken:    "google-id-token",
		RequestURI: "http://localhost/callback",
	})
	if err != nil {
		t.Fatalf("SignInWithIdP: %v", err)
	}
	if !s.NewUser || s.Email != "g@example.com" {
		t.Errorf("unexpected session %+v", s)
	}
	body := (*calls)[0].body
	post, _ := url.ParseQuery(body["postBody"].(string))
	if post.Get("id_token") != "google-id-token" || post.Get("providerId") != "google.com" {
		t.Errorf("unexpected postBody %v", body["postBody"])
	}
	if body["requestUri"] != "http://localhost/callback" {
		t.Errorf("unexpected requestUri %v", body["requestUri"])
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.BaseURL != DefaultBaseURL || cfg.Timeout != 10*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected api key error")
	}
	if _, err := New(Config{}, nil); err == nil {
		t.Error("expected New to reject missing api key")
	}
}

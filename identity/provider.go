package identity

import (
	"context"
	"time"
)

// Session is a signed-in identity returned by the provider.
type Session struct {
	UserID       string    `json:"uid"`
	Email        string    `json:"email,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
	PhoneNumber  string    `json:"phone,omitempty"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	NewUser      bool      `json:"new_user,omitempty"`
}

// IdPCredential is a federated credential presented to the provider.
type IdPCredential struct {
	// ProviderID identifies the IdP ("google.com").
	ProviderID string
	IDToken    string
	// RequestURI is the callback URL the credential was obtained on.
	RequestURI string
}

// PendingVerification is an outstanding phone verification. The handle must
// be kept and the code confirmed against it; requesting a fresh code
// invalidates nothing but produces a different handle.
type PendingVerification interface {
	// Handle is the opaque value needed to resume this verification later.
	Handle() string
	Confirm(ctx context.Context, code string) (*Session, error)
}

// Provider is the identity provider capability set.
type Provider interface {
	SignUp(ctx context.Context, email, password, displayName string) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignInWithIdP(ctx context.Context, cred IdPCredential) (*Session, error)
	SendPasswordReset(ctx context.Context, email string) error
	// SendVerificationCode texts a one-time code to phone. challengeToken is
	// the bot-challenge response proving a human asked for it.
	SendVerificationCode(ctx context.Context, phone, challengeToken string) (PendingVerification, error)
	// ResumeVerification rebuilds a pending verification from its handle.
	ResumeVerification(handle string) PendingVerification
}

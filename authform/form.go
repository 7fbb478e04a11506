package authform

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/kbukum/storefront/logger"
)

// FederatedState is the pending authorization-code flow of a form.
type FederatedState struct {
	Provider string `json:"provider"`
	State    string `json:"state"`
	Nonce    string `json:"nonce"`
	Verifier string `json:"verifier"`
}

// Snapshot is the serialisable state of a Form. It never holds a password
// or an OTP code.
type Snapshot struct {
	Mode           Mode            `json:"mode"`
	Email          string          `json:"email,omitempty"`
	DisplayName    string          `json:"display_name,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	PendingHandle  string          `json:"pending_handle,omitempty"`
	ChallengeReady bool            `json:"challenge_ready,omitempty"`
	Federated      *FederatedState `json:"federated,omitempty"`
	// Notice is the notification waiting to be shown on the next render.
	Notice *Notice `json:"notice,omitempty"`
}

// Form is one visitor's account form.
type Form struct {
	deps Deps
	log  *logger.Logger

	mode           Mode
	email          string
	displayName    string
	phone          string
	pendingHandle  string
	challengeReady bool
	federated      *FederatedState

	busy atomic.Bool
}

// New creates a form in the initial mode.
func New(deps Deps) *Form {
	deps.applyDefaults()
	return &Form{
		deps: deps,
		log:  deps.Logger.WithComponent("authform"),
		mode: InitialMode,
	}
}

// Restore rebuilds a form from a snapshot. An unknown mode falls back to
// the initial one, and a pending handle outside OTP verification is dropped.
func Restore(deps Deps, s Snapshot) *Form {
	f := New(deps)
	if s.Mode.Valid() {
		f.mode = s.Mode
	}
	f.email = s.Email
	f.displayName = s.DisplayName
	f.phone = s.Phone
	f.challengeReady = s.ChallengeReady
	f.federated = s.Federated
	if f.mode == ModeOTPVerify {
		f.pendingHandle = s.PendingHandle
	}
	if f.mode == ModeOTPVerify && f.pendingHandle == "" {
		f.mode = ModeOTPRequest
	}
	return f
}

// Snapshot captures the form state.
func (f *Form) Snapshot() Snapshot {
	return Snapshot{
		Mode:           f.mode,
		Email:          f.email,
		DisplayName:    f.displayName,
		Phone:          f.phone,
		PendingHandle:  f.pendingHandle,
		ChallengeReady: f.challengeReady,
		Federated:      f.federated,
	}
}

func (f *Form) Mode() Mode          { return f.mode }
func (f *Form) Email() string       { return f.email }
func (f *Form) DisplayName() string { return f.displayName }
func (f *Form) Phone() string       { return f.phone }

// PendingHandle is the handle of the outstanding phone verification.
func (f *Form) PendingHandle() string { return f.pendingHandle }

// ChallengeReady reports whether the bot challenge has been initialized.
func (f *Form) ChallengeReady() bool { return f.challengeReady }

// SetEmail keeps the email typed into the active view, so it survives a
// switch to another view without a submission.
func (f *Form) SetEmail(email string) { f.email = strings.TrimSpace(email) }

// ShowSignUp switches to the sign-up form.
func (f *Form) ShowSignUp() { f.switchTo(ModeSignUp) }

// ShowSignIn switches to the sign-in form.
func (f *Form) ShowSignIn() { f.switchTo(ModeSignIn) }

// ShowResetPassword switches to the password-reset form.
func (f *Form) ShowResetPassword() { f.switchTo(ModeResetPassword) }

// ShowOTPLogin switches to OTP login and initializes the bot challenge the
// first time. A failed initialization is logged; requesting a code then
// reports that verification is not ready.
func (f *Form) ShowOTPLogin(ctx context.Context) {
	if !f.mode.IsOTP() {
		f.switchTo(ModeOTPRequest)
	}
	f.initChallenge(ctx)
}

func (f *Form) switchTo(m Mode) {
	if f.mode.IsOTP() && !m.IsOTP() {
		f.pendingHandle = ""
	}
	f.mode = m
}

func (f *Form) initChallenge(ctx context.Context) {
	if f.challengeReady || f.deps.Challenge == nil {
		return
	}
	if err := f.deps.Challenge.Init(ctx); err != nil {
		f.log.WithContext(ctx).Warn("challenge initialization failed", logger.ErrorFields("init_challenge", err))
		return
	}
	f.challengeReady = true
}

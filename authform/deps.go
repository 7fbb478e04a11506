package authform

import (
	"context"

	"github.com/kbukum/storefront/auth/oidc"
	"github.com/kbukum/storefront/identity"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/observability"
)

// ChallengeProvider is the bot challenge required before a code is texted.
type ChallengeProvider interface {
	// Init prepares the challenge. The form calls it once per lifetime.
	Init(ctx context.Context) error
	// Token produces a challenge response on demand.
	Token(ctx context.Context) (string, error)
}

// FederatedProviders looks up federated sign-in providers by route name.
type FederatedProviders interface {
	Get(name string) (oidc.Provider, bool)
}

// DefaultHomeRoute is where a successful sign-in lands.
const DefaultHomeRoute = "/"

// Deps are the collaborators of a Form.
type Deps struct {
	Provider identity.Provider
	// Challenge may be nil, in which case OTP login is never ready.
	Challenge ChallengeProvider
	// Federated may be nil when no federated provider is configured.
	Federated FederatedProviders
	Logger    *logger.Logger
	Metrics   *observability.AuthMetrics
	HomeRoute string
	// RedirectAfterSignUp makes sign-up behave like sign-in: the new
	// session is returned and the browser goes home.
	RedirectAfterSignUp bool
}

func (d *Deps) applyDefaults() {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.HomeRoute == "" {
		d.HomeRoute = DefaultHomeRoute
	}
}

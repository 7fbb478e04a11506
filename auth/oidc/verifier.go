package oidc

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/storefront/httpclient"
)

// IDClaims are the ID token claims the storefront reads.
type IDClaims struct {
	jwt.RegisteredClaims
	Nonce         string `json:"nonce,omitempty"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
}

// Verifier validates ID tokens against the IdP's JWKS.
type Verifier struct {
	clientID string
	issuers  []string
	jwks     *jwksCache
	now      func() time.Time
}

// VerifierConfig configures the ID token verifier.
type VerifierConfig struct {
	ClientID string
	// Issuers lists accepted "iss" values. Empty accepts any issuer.
	Issuers  []string
	JWKSURL  string
	CacheTTL time.Duration
	// Now overrides the clock (tests).
	Now func() time.Time
}

// NewVerifier creates a verifier that fetches keys through client.
func NewVerifier(cfg VerifierConfig, client *httpclient.Client) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("oidc: client ID is required")
	}
	if cfg.JWKSURL == "" {
		return nil, errors.New("oidc: JWKS URL is required")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Verifier{
		clientID: cfg.ClientID,
		issuers:  cfg.Issuers,
		now:      cfg.Now,
		jwks: &jwksCache{
			url:    cfg.JWKSURL,
			client: client,
			ttl:    cfg.CacheTTL,
			now:    cfg.Now,
		},
	}, nil
}

// Verify checks signature, audience, expiry, issuer and, when nonce is not
// empty, the nonce claim.
func (v *Verifier) Verify(ctx context.Context, raw, nonce string) (*IDClaims, error) {
	claims := &IDClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return v.jwks.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384"}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("oidc: verify id token: %w", err)
	}
	if len(v.issuers) > 0 && !slices.Contains(v.issuers, claims.Issuer) {
		return nil, fmt.Errorf("oidc: issuer %q not accepted", claims.Issuer)
	}
	if nonce != "" && claims.Nonce != nonce {
		return nil, errors.New("oidc: nonce mismatch")
	}
	return claims, nil
}

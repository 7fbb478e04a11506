package oidc

import "time"

// TokenResult holds the tokens returned from an authorization-code exchange.
type TokenResult struct {
	AccessToken  string
	RefreshToken string

	// IDToken is the raw OIDC ID token JWT string.
	IDToken   string
	TokenType string
	ExpiresAt time.Time
	Scopes    []string

	// Claims is set when the ID token was verified locally.
	Claims *IDClaims
}

package oidc

import (
	"fmt"
	"time"
)

// Google endpoints used when a provider named "google" leaves them empty.
const (
	GoogleAuthEndpoint  = "https://accounts.google.com/o/oauth2/v2/auth"
	GoogleTokenEndpoint = "https://oauth2.googleapis.com/token"
	GoogleJWKSURL       = "https://www.googleapis.com/oauth2/v3/certs"
	GoogleProviderID    = "google.com"
)

var googleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

// Token endpoint client authentication methods.
const (
	TokenAuthPost  = "client_secret_post"
	TokenAuthBasic = "client_secret_basic"
)

// Config configures one federated sign-in provider.
// Loadable from YAML/env via mapstructure tags.
type Config struct {
	Enabled bool `mapstructure:"enabled"`

	// DisplayName is shown to the user ("Google Sign In successful!").
	DisplayName string `mapstructure:"display_name"`

	// ProviderID is the identifier the identity provider knows this IdP by.
	ProviderID string `mapstructure:"provider_id"`

	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`

	// RedirectURL is the absolute callback URL registered with the IdP.
	RedirectURL string `mapstructure:"redirect_url"`

	AuthEndpoint  string `mapstructure:"auth_endpoint"`
	TokenEndpoint string `mapstructure:"token_endpoint"`
	// TokenAuthMethod is client_secret_post (default) or client_secret_basic.
	TokenAuthMethod string `mapstructure:"token_auth_method"`

	// Prompt is sent as the prompt parameter of the consent page, e.g.
	// "select_account" to always show Google's account chooser.
	Prompt string `mapstructure:"prompt"`

	// JWKSURL enables local ID token verification when set.
	JWKSURL string   `mapstructure:"jwks_url"`
	Issuers []string `mapstructure:"issuers"`

	// Scopes are the OAuth2 scopes to request (default: ["openid", "email", "profile"]).
	Scopes []string `mapstructure:"scopes"`

	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	JWKSCacheDuration time.Duration `mapstructure:"jwks_cache_duration"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields. A provider
// named "google" gets Google's public endpoints.
func (c *Config) ApplyDefaults(name string) {
	if name == "google" {
		if c.DisplayName == "" {
			c.DisplayName = "Google"
		}
		if c.ProviderID == "" {
			c.ProviderID = GoogleProviderID
		}
		if c.AuthEndpoint == "" {
			c.AuthEndpoint = GoogleAuthEndpoint
		}
		if c.TokenEndpoint == "" {
			c.TokenEndpoint = GoogleTokenEndpoint
		}
		if c.JWKSURL == "" {
			c.JWKSURL = GoogleJWKSURL
		}
		if len(c.Issuers) == 0 {
			c.Issuers = googleIssuers
		}
	}
	if c.DisplayName == "" {
		c.DisplayName = name
	}
	if len(c.Scopes) == 0 {
		c.Scopes = []string{"openid", "email", "profile"}
	}
	if c.TokenAuthMethod == "" {
		c.TokenAuthMethod = TokenAuthPost
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	if c.JWKSCacheDuration == 0 {
		c.JWKSCacheDuration = time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch {
	case c.ClientID == "":
		return fmt.Errorf("client_id is required")
	case c.ClientSecret == "":
		return fmt.Errorf("client_secret is required")
	case c.RedirectURL == "":
		return fmt.Errorf("redirect_url is required")
	case c.AuthEndpoint == "" || c.TokenEndpoint == "":
		return fmt.Errorf("auth_endpoint and token_endpoint are required")
	case c.ProviderID == "":
		return fmt.Errorf("provider_id is required")
	case c.TokenAuthMethod != TokenAuthPost && c.TokenAuthMethod != TokenAuthBasic:
		return fmt.Errorf("token_auth_method must be %s or %s, got %q", TokenAuthPost, TokenAuthBasic, c.TokenAuthMethod)
	}
	return nil
}

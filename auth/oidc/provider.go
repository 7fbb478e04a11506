package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Provider is one federated sign-in provider (Google, GitHub, ...) driven
// through the authorization-code flow.
type Provider interface {
	// Name is the route identifier ("google").
	Name() string

	// DisplayName is the label shown to users ("Google").
	DisplayName() string

	// ProviderID is the identifier the identity provider uses for this IdP
	// ("google.com").
	ProviderID() string

	// RedirectURL is the callback URL registered with the IdP.
	RedirectURL() string

	// AuthURL returns the consent page URL for the given state.
	AuthURL(state string, opts ...AuthURLOption) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string, opts ...ExchangeOption) (*TokenResult, error)
}

// AuthURLOption configures authorization URL generation.
type AuthURLOption func(*AuthURLOptions)

// AuthURLOptions holds the configuration for authorization URL generation.
type AuthURLOptions struct {
	Nonce       string
	PKCE        *PKCE
	ExtraParams map[string]string
}

// WithNonce adds an OIDC nonce parameter for replay protection.
func WithNonce(nonce string) AuthURLOption {
	return func(o *AuthURLOptions) { o.Nonce = nonce }
}

// WithPKCE adds the PKCE challenge parameters.
func WithPKCE(pkce *PKCE) AuthURLOption {
	return func(o *AuthURLOptions) { o.PKCE = pkce }
}

// WithExtraParam adds a custom query parameter to the authorization URL.
func WithExtraParam(key, value string) AuthURLOption {
	return func(o *AuthURLOptions) {
		if o.ExtraParams == nil {
			o.ExtraParams = make(map[string]string)
		}
		o.ExtraParams[key] = value
	}
}

// ApplyAuthURLOptions applies options and returns the resolved configuration.
func ApplyAuthURLOptions(opts []AuthURLOption) AuthURLOptions {
	var o AuthURLOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ExchangeOption configures the token exchange.
type ExchangeOption func(*ExchangeOptions)

// ExchangeOptions holds the configuration for token exchange.
type ExchangeOptions struct {
	CodeVerifier string
	// Nonce is compared with the ID token's nonce claim when verification is enabled.
	Nonce string
}

// WithCodeVerifier adds the PKCE code verifier for the exchange.
func WithCodeVerifier(verifier string) ExchangeOption {
	return func(o *ExchangeOptions) { o.CodeVerifier = verifier }
}

// WithExpectedNonce requires the verified ID token to carry nonce.
func WithExpectedNonce(nonce string) ExchangeOption {
	return func(o *ExchangeOptions) { o.Nonce = nonce }
}

// ApplyExchangeOptions applies options and returns the resolved configuration.
func ApplyExchangeOptions(opts []ExchangeOption) ExchangeOptions {
	var o ExchangeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ErrStateMismatch is returned when the callback state does not match the
// state issued with the authorization URL.
var ErrStateMismatch = errors.New("oidc: state mismatch")

// AuthorizationError is an error returned by the IdP on the callback
// (RFC 6749 section 4.1.2.1) or by the token endpoint.
type AuthorizationError struct {
	Code        string
	Description string
}

func (e *AuthorizationError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("oidc: %s: %s", e.Code, e.Description)
	}
	return "oidc: " + e.Code
}

// IsAccessDenied reports whether the user declined or abandoned consent.
func IsAccessDenied(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae) && ae.Code == "access_denied"
}

// Callback is the authorization response delivered to the redirect URL.
type Callback struct {
	Code  string
	State string
}

// ParseCallback validates the callback query against the expected state.
func ParseCallback(query url.Values, expectedState string) (*Callback, error) {
	if code := query.Get("error"); code != "" {
		return nil, &AuthorizationError{Code: code, Description: query.Get("error_description")}
	}
	state := query.Get("state")
	if expectedState == "" || state != expectedState {
		return nil, ErrStateMismatch
	}
	code := query.Get("code")
	if code == "" {
		return nil, &AuthorizationError{Code: "invalid_request", Description: "missing authorization code"}
	}
	return &Callback{Code: code, State: state}, nil
}

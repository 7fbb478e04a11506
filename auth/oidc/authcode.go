package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/storefront/httpclient"
)

// AuthCodeProvider is a Provider for any IdP that implements the standard
// authorization-code flow with client secret authentication.
type AuthCodeProvider struct {
	name     string
	cfg      Config
	client   *httpclient.Client
	verifier *Verifier
	now      func() time.Time
}

var _ Provider = (*AuthCodeProvider)(nil)

// NewAuthCodeProvider builds a provider from cfg. Defaults are applied for
// name, so "google" works with only client credentials and a redirect URL.
func NewAuthCodeProvider(name string, cfg Config) (*AuthCodeProvider, error) {
	cfg.ApplyDefaults(name)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("oidc %s: %w", name, err)
	}
	client, err := httpclient.New(httpclient.Config{Timeout: cfg.HTTPTimeout})
	if err != nil {
		return nil, err
	}
	p := &AuthCodeProvider{name: name, cfg: cfg, client: client, now: time.Now}
	if cfg.JWKSURL != "" {
		p.verifier, err = NewVerifier(VerifierConfig{
			ClientID: cfg.ClientID,
			Issuers:  cfg.Issuers,
			JWKSURL:  cfg.JWKSURL,
			CacheTTL: cfg.JWKSCacheDuration,
		}, client)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *AuthCodeProvider) Name() string        { return p.name }
func (p *AuthCodeProvider) DisplayName() string { return p.cfg.DisplayName }
func (p *AuthCodeProvider) ProviderID() string  { return p.cfg.ProviderID }

// RedirectURL is the configured callback URL.
func (p *AuthCodeProvider) RedirectURL() string { return p.cfg.RedirectURL }

// AuthURL returns the consent page URL.
func (p *AuthCodeProvider) AuthURL(state string, opts ...AuthURLOption) string {
	if p.cfg.Prompt != "" {
		opts = append([]AuthURLOption{WithExtraParam("prompt", p.cfg.Prompt)}, opts...)
	}
	o := ApplyAuthURLOptions(opts)

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURL)
	q.Set("scope", strings.Join(p.cfg.Scopes, " "))
	q.Set("state", state)
	if o.Nonce != "" {
		q.Set("nonce", o.Nonce)
	}
	if o.PKCE != nil {
		q.Set("code_challenge", o.PKCE.CodeChallenge)
		q.Set("code_challenge_method", o.PKCE.CodeChallengeMethod)
	}
	for k, v := range o.ExtraParams {
		q.Set(k, v)
	}

	sep := "?"
	if strings.Contains(p.cfg.AuthEndpoint, "?") {
		sep = "&"
	}
	return p.cfg.AuthEndpoint + sep + q.Encode()
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	IDToken          string `json:"id_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange trades an authorization code for tokens and verifies the ID token
// when a JWKS URL is configured.
func (p *AuthCodeProvider) Exchange(ctx context.Context, code string, opts ...ExchangeOption) (*TokenResult, error) {
	o := ApplyExchangeOptions(opts)

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", p.cfg.RedirectURL)
	if o.CodeVerifier != "" {
		form.Set("code_verifier", o.CodeVerifier)
	}
	var auth *httpclient.AuthConfig
	if p.cfg.TokenAuthMethod == TokenAuthBasic {
		// Credentials are form-encoded before going into the header.
		auth = httpclient.BasicAuth(url.QueryEscape(p.cfg.ClientID), url.QueryEscape(p.cfg.ClientSecret))
	} else {
		form.Set("client_id", p.cfg.ClientID)
		form.Set("client_secret", p.cfg.ClientSecret)
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    p.cfg.TokenEndpoint,
		Headers: map[string]string{"Accept": "application/json"},
		Body:    form,
		Auth:    auth,
	})
	if err != nil {
		if herr, ok := httpclient.AsError(err); ok && len(herr.Body) > 0 {
			var tr tokenResponse
			if json.Unmarshal(herr.Body, &tr) == nil && tr.Error != "" {
				return nil, &AuthorizationError{Code: tr.Error, Description: tr.ErrorDescription}
			}
		}
		return nil, err
	}

	var tr tokenResponse
	if err := resp.JSON(&tr); err != nil {
		return nil, err
	}
	if tr.Error != "" {
		return nil, &AuthorizationError{Code: tr.Error, Description: tr.ErrorDescription}
	}
	if tr.IDToken == "" {
		return nil, &AuthorizationError{Code: "invalid_grant", Description: "token response has no id_token"}
	}

	result := &TokenResult{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		IDToken:      tr.IDToken,
		TokenType:    tr.TokenType,
	}
	if tr.ExpiresIn > 0 {
		result.ExpiresAt = p.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	if tr.Scope != "" {
		result.Scopes = strings.Fields(tr.Scope)
	}

	if p.verifier != nil {
		claims, err := p.verifier.Verify(ctx, tr.IDToken, o.Nonce)
		if err != nil {
			return nil, err
		}
		result.Claims = claims
	}
	return result, nil
}

// Package oidc implements the server side of the OAuth2 authorization-code
// flow used for federated sign-in.
//
// A Provider builds the consent URL and exchanges the returned code for
// tokens. AuthCodeProvider is the generic implementation: it talks to any
// standards-compliant token endpoint through httpclient and, when a JWKS URL
// is configured, verifies the returned ID token (signature, audience, issuer,
// expiry and nonce) with golang-jwt before handing it back.
//
//	state, _ := oidc.GenerateState()
//	nonce, _ := oidc.GenerateNonce()
//	pkce, _ := oidc.NewPKCE()
//	redirect := provider.AuthURL(state, oidc.WithNonce(nonce), oidc.WithPKCE(pkce))
//
//	// on the callback
//	cb, err := oidc.ParseCallback(query, state)
//	tokens, err := provider.Exchange(ctx, cb.Code,
//	    oidc.WithCodeVerifier(pkce.CodeVerifier), oidc.WithExpectedNonce(nonce))
package oidc

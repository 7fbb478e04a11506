// Package auth wires federated sign-in providers: it turns the federated
// configuration section into oidc providers and keeps them in a Registry the
// account form looks providers up in by route name.
//
// The OAuth2 flow itself lives in auth/oidc.
package auth

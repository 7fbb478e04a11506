package oidc

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
)

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateState creates a random 64-character state value for CSRF
// protection of the callback.
func GenerateState() (string, error) {
	return randomHex(32)
}

// GenerateNonce creates a random 32-character nonce bound into the ID token.
func GenerateNonce() (string, error) {
	return randomHex(16)
}

// PKCE holds a PKCE (Proof Key for Code Exchange) challenge/verifier pair.
// The challenge goes into the authorization URL, the verifier into the
// token exchange.
type PKCE struct {
	CodeVerifier        string
	CodeChallenge       string
	CodeChallengeMethod string
}

// NewPKCE generates a new S256 PKCE pair.
func NewPKCE() (*PKCE, error) {
	verifier := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, verifier); err != nil {
		return nil, err
	}
	v := base64.RawURLEncoding.EncodeToString(verifier)
	return &PKCE{
		CodeVerifier:        v,
		CodeChallenge:       S256Challenge(v),
		CodeChallengeMethod: "S256",
	}, nil
}

// S256Challenge derives the code challenge for a verifier.
func S256Challenge(verifier string) string {
	h := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

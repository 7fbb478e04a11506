package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the ID token claims shown on the home page.
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// Label is the best human label for the signed-in user.
func (c *Claims) Label() string {
	for _, v := range []string{c.Name, c.Email, c.PhoneNumber, c.Subject} {
		if v != "" {
			return v
		}
	}
	return ""
}

var unverifiedParser = jwt.NewParser()

// ParseClaims decodes an ID token issued by the provider without verifying
// its signature. Only use it for display; the provider is authoritative.
func ParseClaims(idToken string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := unverifiedParser.ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("identity: parse id token: %w", err)
	}
	return claims, nil
}

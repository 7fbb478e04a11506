package web

import (
	"strings"

	"github.com/kbukum/storefront/validation"
)

// Cookie names.
const (
	FormCookie    = "sf_form"
	SessionCookie = "sf_session"
)

// Config configures routes and cookies.
type Config struct {
	// Home is the route a successful sign-in redirects to.
	Home string `mapstructure:"home"`
	// Account is the account page route; every form route hangs off it.
	Account string `mapstructure:"account"`
	// SecureCookies marks cookies Secure. Enable behind HTTPS.
	SecureCookies bool   `mapstructure:"secure_cookies"`
	CookieDomain  string `mapstructure:"cookie_domain"`
	// SubmitRateLimit caps form submissions per client IP per minute.
	SubmitRateLimit int `mapstructure:"submit_rate_limit"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Home == "" {
		c.Home = "/"
	}
	if c.Account == "" {
		c.Account = "/account"
	}
	if c.SubmitRateLimit <= 0 {
		c.SubmitRateLimit = 20
	}
}

// Validate checks the routes are distinct absolute paths.
func (c *Config) Validate() error {
	var r validation.Rules
	return r.Path("home", c.Home).
		Path("account", c.Account).
		Check(c.Account != c.Home, "account", "must differ from home").
		Check(c.SubmitRateLimit > 0, "submit_rate_limit", "must be positive").
		Err()
}

func (c *Config) path(suffix string) string {
	return strings.TrimSuffix(c.Account, "/") + suffix
}

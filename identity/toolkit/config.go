package toolkit

import (
	"fmt"
	"time"

	"github.com/kbukum/storefront/security"
)

// DefaultBaseURL is the public Identity Toolkit v1 endpoint.
const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Config configures the Identity Toolkit client.
type Config struct {
	// APIKey is the web API key of the project.
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Locale sets X-Firebase-Locale so mails and SMS use the shopper's language.
	Locale string              `yaml:"locale" mapstructure:"locale"`
	TLS    *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("identity.api_key is required")
	}
	return nil
}

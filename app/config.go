package app

import (
	"fmt"

	"github.com/kbukum/storefront/auth"
	"github.com/kbukum/storefront/challenge"
	"github.com/kbukum/storefront/config"
	"github.com/kbukum/storefront/formstore"
	"github.com/kbukum/storefront/identity/toolkit"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/redis"
	"github.com/kbukum/storefront/server"
	"github.com/kbukum/storefront/web"
)

// ServiceName is the name configuration files and env files are looked up by.
const ServiceName = "storefront"

// AuthConfig tunes form behaviour.
type AuthConfig struct {
	// RedirectAfterSignUp signs the new account in and goes home after a
	// successful sign-up instead of staying on the form.
	RedirectAfterSignUp bool `yaml:"redirect_after_sign_up" mapstructure:"redirect_after_sign_up"`
}

// Config is the storefront service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Identity      toolkit.Config       `yaml:"identity" mapstructure:"identity"`
	Challenge     challenge.Config     `yaml:"challenge" mapstructure:"challenge"`
	Federated     auth.Config          `yaml:"federated" mapstructure:"federated"`
	Forms         formstore.Config     `yaml:"forms" mapstructure:"forms"`
	Redis         redis.Config         `yaml:"redis" mapstructure:"redis"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Routes        web.Config           `yaml:"routes" mapstructure:"routes"`
	Auth          AuthConfig           `yaml:"auth" mapstructure:"auth"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Identity.ApplyDefaults()
	c.Challenge.ApplyDefaults()
	c.Federated.ApplyDefaults()
	c.Forms.ApplyDefaults()
	if c.Forms.Store == formstore.BackendRedis {
		c.Redis.Enabled = true
	}
	c.Redis.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Routes.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"server", &c.Server},
		{"identity", &c.Identity},
		{"challenge", &c.Challenge},
		{"federated", &c.Federated},
		{"forms", &c.Forms},
		{"redis", &c.Redis},
		{"observability", &c.Observability},
		{"routes", &c.Routes},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("config.%s: %w", s.name, err)
		}
	}
	return nil
}

package auth

import (
	"fmt"

	"github.com/kbukum/storefront/auth/oidc"
)

// Config is the federated sign-in section. Each field is one provider keyed
// by its route name.
type Config struct {
	Google oidc.Config `mapstructure:"google"`
}

// providers lists the configured providers by route name.
func (c *Config) providers() map[string]*oidc.Config {
	return map[string]*oidc.Config{"google": &c.Google}
}

// ApplyDefaults applies per-provider defaults.
func (c *Config) ApplyDefaults() {
	for name, p := range c.providers() {
		p.ApplyDefaults(name)
	}
}

// Validate checks every enabled provider.
func (c *Config) Validate() error {
	for name, p := range c.providers() {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("federated.%s: %w", name, err)
		}
	}
	return nil
}

// Describe returns a one-liner for startup logs, e.g. "google".
func (c *Config) Describe() string {
	var line string
	for name, p := range c.providers() {
		if !p.Enabled {
			continue
		}
		if line != "" {
			line += ","
		}
		line += name
	}
	if line == "" {
		return "disabled"
	}
	return line
}

// Build creates a Registry holding every enabled provider.
func (c *Config) Build() (*Registry, error) {
	reg := NewRegistry()
	for name, p := range c.providers() {
		if !p.Enabled {
			continue
		}
		provider, err := oidc.NewAuthCodeProvider(name, *p)
		if err != nil {
			return nil, err
		}
		reg.Register(provider)
	}
	return reg, nil
}

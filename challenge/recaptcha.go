package challenge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/kbukum/storefront/validation"
)

// FormField is the form field the widget posts its response in.
const FormField = "g-recaptcha-response"

var (
	// ErrNotInitialized is returned by Token before Init succeeded.
	ErrNotInitialized = errors.New("challenge: widget not initialized")
	// ErrNoResponse is returned when the request carries no widget response.
	ErrNoResponse = errors.New("challenge: no challenge response in request")
)

// Config configures the reCAPTCHA widget.
type Config struct {
	// SiteKey is rendered into the page. An empty key disables phone sign-in.
	SiteKey string `yaml:"site_key" mapstructure:"site_key"`
	// Size is "invisible" (default) or "normal".
	Size string `yaml:"size" mapstructure:"size"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Size == "" {
		c.Size = "invisible"
	}
}

// Validate checks the widget size.
func (c *Config) Validate() error {
	var r validation.Rules
	return r.OneOf("size", c.Size, "invisible", "normal").Err()
}

// Recaptcha is a reCAPTCHA-backed challenge provider. One value serves all
// forms; Init is called by each form the first time it enters OTP login.
type Recaptcha struct {
	cfg   Config
	inits atomic.Int64
}

// NewRecaptcha creates a provider for cfg.
func NewRecaptcha(cfg Config) *Recaptcha {
	cfg.ApplyDefaults()
	return &Recaptcha{cfg: cfg}
}

// SiteKey returns the key rendered into the OTP form.
func (r *Recaptcha) SiteKey() string { return r.cfg.SiteKey }

// Size returns the widget size.
func (r *Recaptcha) Size() string { return r.cfg.Size }

// Init prepares the widget. It fails when no site key is configured.
func (r *Recaptcha) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.cfg.SiteKey == "" {
		return fmt.Errorf("challenge: %w: site key not configured", ErrNotInitialized)
	}
	r.inits.Add(1)
	return nil
}

// Inits reports how many times Init succeeded.
func (r *Recaptcha) Inits() int64 { return r.inits.Load() }

// Token returns the widget response attached to ctx.
func (r *Recaptcha) Token(ctx context.Context) (string, error) {
	if r.cfg.SiteKey == "" {
		return "", ErrNotInitialized
	}
	token, _ := ctx.Value(responseKey{}).(string)
	if strings.TrimSpace(token) == "" {
		return "", ErrNoResponse
	}
	return token, nil
}

type responseKey struct{}

// WithResponse attaches the widget response posted with a request.
func WithResponse(ctx context.Context, response string) context.Context {
	return context.WithValue(ctx, responseKey{}, response)
}

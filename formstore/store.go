package formstore

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/storefront/authform"
	"github.com/kbukum/storefront/encryption"
	"github.com/kbukum/storefront/validation"
)

// ErrLocked is returned by Lock when another request holds the form.
var ErrLocked = errors.New("formstore: form is locked")

// Release gives up a lock obtained from Lock.
type Release func()

// Store persists form snapshots by form id.
type Store interface {
	// Load returns the snapshot for id, or nil when there is none.
	Load(ctx context.Context, id string) (*authform.Snapshot, error)
	// Save stores the snapshot and restarts its TTL.
	Save(ctx context.Context, id string, snap *authform.Snapshot) error
	Delete(ctx context.Context, id string) error
	// Lock claims the form for one request. It returns ErrLocked when the
	// form is already claimed.
	Lock(ctx context.Context, id string) (Release, error)
}

// Backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config configures the form store.
type Config struct {
	// Store selects the backend: "memory" or "redis".
	Store string `mapstructure:"store"`
	// TTL is how long an untouched form survives.
	TTL time.Duration `mapstructure:"ttl"`
	// LockTTL bounds how long a crashed request can hold a form.
	LockTTL time.Duration `mapstructure:"lock_ttl"`
	// CleanupInterval is how often the memory store evicts expired forms.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `mapstructure:"key_prefix"`
	// Encryption seals snapshots written to Redis. Disabled without a key.
	Encryption encryption.Config `mapstructure:"encryption"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Store == "" {
		c.Store = BackendMemory
	}
	if c.TTL <= 0 {
		c.TTL = 15 * time.Minute
	}
	if c.LockTTL <= 0 {
		c.LockTTL = 30 * time.Second
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Minute
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "storefront:form"
	}
	c.Encryption.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var r validation.Rules
	return r.OneOf("store", c.Store, BackendMemory, BackendRedis).
		AtLeast("ttl", c.TTL, time.Minute).
		Include("encryption", c.Encryption.Validate()).
		Err()
}

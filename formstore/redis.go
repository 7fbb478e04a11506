package formstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/storefront/authform"
	"github.com/kbukum/storefront/encryption"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/redis"
)

// ClientSource yields the Redis client once it is connected.
// *redis.Component satisfies it.
type ClientSource interface {
	Client() *redis.Client
}

// Redis is a Store shared between service instances.
type Redis struct {
	cfg    Config
	source ClientSource
	sealer *encryption.Sealer
	log    *logger.Logger
}

var _ Store = (*Redis)(nil)

// record is the stored value. With an encryption key configured only
// Sealed is set, holding the snapshot JSON bound to the form id.
type record struct {
	Snapshot *authform.Snapshot `json:"snapshot,omitempty"`
	Sealed   []byte             `json:"sealed,omitempty"`
}

// NewRedis creates a Redis-backed store. The client is resolved on every
// call so the store can be built before the Redis component starts.
func NewRedis(cfg Config, source ClientSource, log *logger.Logger) (*Redis, error) {
	cfg.ApplyDefaults()
	r := &Redis{cfg: cfg, source: source, log: log.WithComponent("formstore")}
	if cfg.Encryption.Enabled() {
		s, err := encryption.New(cfg.Encryption)
		if err != nil {
			return nil, fmt.Errorf("formstore: %w", err)
		}
		r.sealer = s
	}
	return r, nil
}

// Sealed reports whether snapshots are encrypted at rest.
func (r *Redis) Sealed() bool { return r.sealer != nil }

var (
	errNotConnected = errors.New("formstore: redis is not connected")
	errNoKey        = errors.New("formstore: sealed form but no encryption key configured")
)

func (r *Redis) client() (*redis.Client, error) {
	c := r.source.Client()
	if c == nil {
		return nil, errNotConnected
	}
	return c, nil
}

func (r *Redis) records() (*redis.TypedStore[record], error) {
	c, err := r.client()
	if err != nil {
		return nil, err
	}
	return redis.NewTypedStore[record](c, r.cfg.KeyPrefix), nil
}

func (r *Redis) Load(ctx context.Context, id string) (*authform.Snapshot, error) {
	s, err := r.records()
	if err != nil {
		return nil, err
	}
	rec, err := s.Load(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	if rec.Sealed == nil {
		return rec.Snapshot, nil
	}
	if r.sealer == nil {
		return nil, errNoKey
	}
	data, err := r.sealer.Open(rec.Sealed, []byte(id))
	if err != nil {
		return nil, fmt.Errorf("formstore open %q: %w", id, err)
	}
	var snap authform.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("formstore decode %q: %w", id, err)
	}
	return &snap, nil
}

func (r *Redis) Save(ctx context.Context, id string, snap *authform.Snapshot) error {
	s, err := r.records()
	if err != nil {
		return err
	}
	rec := record{Snapshot: snap}
	if r.sealer != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("formstore encode %q: %w", id, err)
		}
		if rec.Sealed, err = r.sealer.Seal(data, []byte(id)); err != nil {
			return err
		}
		rec.Snapshot = nil
	}
	return s.Save(ctx, id, &rec, r.cfg.TTL)
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	s, err := r.records()
	if err != nil {
		return err
	}
	return s.Delete(ctx, id)
}

func (r *Redis) lockKey(id string) string {
	return r.cfg.KeyPrefix + ":lock:" + id
}

// Lock takes a token lock with SET NX. Release only deletes the key while
// it still holds this request's token.
func (r *Redis) Lock(ctx context.Context, id string) (Release, error) {
	c, err := r.client()
	if err != nil {
		return nil, err
	}
	token := uuid.NewString()
	key := r.lockKey(id)
	ok, err := c.SetNX(ctx, key, token, r.cfg.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("formstore lock %q: %w", id, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		// The request context may already be done.
		if _, err := c.DelIfEquals(context.WithoutCancel(ctx), key, token); err != nil {
			r.log.Warn("form lock release failed", logger.ErrorFields("unlock", err))
		}
	}, nil
}

package formstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/storefront/authform"
	"github.com/kbukum/storefront/component"
	"github.com/kbukum/storefront/logger"
)

type memoryEntry struct {
	snap    authform.Snapshot
	expires time.Time
}

// Memory is an in-process Store. Run it as a component so expired forms
// are evicted in the background.
type Memory struct {
	cfg Config
	log *logger.Logger
	now func() time.Time

	mu     sync.Mutex
	forms  map[string]memoryEntry
	locks  map[string]time.Time
	stopCh chan struct{}
	doneCh chan struct{}
}

var (
	_ Store                 = (*Memory)(nil)
	_ component.Component   = (*Memory)(nil)
	_ component.Describable = (*Memory)(nil)
)

// NewMemory creates an in-memory store.
func NewMemory(cfg Config, log *logger.Logger) *Memory {
	cfg.ApplyDefaults()
	return &Memory{
		cfg:   cfg,
		log:   log.WithComponent("formstore"),
		now:   time.Now,
		forms: make(map[string]memoryEntry),
		locks: make(map[string]time.Time),
	}
}

func (m *Memory) Load(_ context.Context, id string) (*authform.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.forms[id]
	if !ok || !m.now().Before(e.expires) {
		delete(m.forms, id)
		return nil, nil
	}
	snap := e.snap
	return &snap, nil
}

func (m *Memory) Save(_ context.Context, id string, snap *authform.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forms[id] = memoryEntry{snap: *snap, expires: m.now().Add(m.cfg.TTL)}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.forms, id)
	return nil
}

func (m *Memory) Lock(_ context.Context, id string) (Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if until, held := m.locks[id]; held && m.now().Before(until) {
		return nil, ErrLocked
	}
	until := m.now().Add(m.cfg.LockTTL)
	m.locks[id] = until
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// A lock that expired and was re-taken belongs to someone else.
		if m.locks[id].Equal(until) {
			delete(m.locks, id)
		}
	}, nil
}

// Len returns the number of stored forms, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.forms)
}

// evict drops expired forms and stale locks.
func (m *Memory) evict() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, e := range m.forms {
		if !now.Before(e.expires) {
			delete(m.forms, id)
			n++
		}
	}
	for id, until := range m.locks {
		if !now.Before(until) {
			delete(m.locks, id)
		}
	}
	return n
}

// Name returns the component name.
func (m *Memory) Name() string { return "formstore" }

// Start launches the eviction loop.
func (m *Memory) Start(context.Context) error {
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	go m.janitor()
	m.log.Info("Memory form store started", logger.Fields("ttl", m.cfg.TTL.String()))
	return nil
}

func (m *Memory) janitor() {
	defer close(m.doneCh)
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			if n := m.evict(); n > 0 {
				m.log.Debug("evicted expired forms", logger.Fields("count", n))
			}
		}
	}
}

// Stop ends the eviction loop.
func (m *Memory) Stop(ctx context.Context) error {
	if m.stopCh == nil {
		return nil
	}
	close(m.stopCh)
	select {
	case <-m.doneCh:
	case <-ctx.Done():
		return ctx.Err()
	}
	m.stopCh = nil
	return nil
}

// Health always reports healthy; it carries the form count.
func (m *Memory) Health(context.Context) component.Health {
	return component.Health{
		Name:    m.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d forms", m.Len()),
	}
}

// Describe returns the startup log line.
func (m *Memory) Describe() component.Description {
	return component.Description{Type: "formstore", Details: fmt.Sprintf("memory ttl=%s", m.cfg.TTL)}
}

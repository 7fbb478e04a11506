package auth

import (
	"sort"
	"sync"

	"github.com/kbukum/storefront/auth/oidc"
)

// Registry is a thread-safe set of federated providers keyed by Name().
type Registry struct {
	mu        sync.RWMutex
	providers map[string]oidc.Provider
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]oidc.Provider)}
}

// Register adds p, replacing any provider with the same name.
func (r *Registry) Register(p oidc.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (oidc.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

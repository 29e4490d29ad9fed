package db

import (
	"fmt"

	"github.com/atlatec/pozo-report-api/config"
)

// Registry is the immutable allow-list of data sources, keyed by public
// connection name. It is built once at startup and only read afterwards,
// so concurrent use needs no synchronization.
type Registry struct {
	stores      map[string]*Store
	names       []string
	defaultName string
}

// NewRegistry opens a store per configured connection, preserving the
// configuration order for Available.
func NewRegistry(cfg config.Config) (*Registry, error) {
	reg := &Registry{
		stores:      make(map[string]*Store, len(cfg.Connections)),
		names:       make([]string, 0, len(cfg.Connections)),
		defaultName: cfg.DefaultConnection,
	}

	for _, conn := range cfg.Connections {
		store, err := NewStore(conn)
		if err != nil {
			reg.Close()
			return nil, fmt.Errorf("registry: %w", err)
		}
		reg.stores[conn.Name] = store
		reg.names = append(reg.names, conn.Name)
	}

	return reg, nil
}

// IsValid reports whether name is on the allow-list.
func (r *Registry) IsValid(name string) bool {
	_, ok := r.stores[name]
	return ok
}

// Resolve returns the store for a public connection name.
func (r *Registry) Resolve(name string) (*Store, bool) {
	store, ok := r.stores[name]
	return store, ok
}

// Available returns the public connection names in configuration order.
func (r *Registry) Available() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Default returns the store used by the legacy single-source endpoints.
func (r *Registry) Default() *Store {
	return r.stores[r.defaultName]
}

// Close releases every store's resources.
func (r *Registry) Close() {
	for _, store := range r.stores {
		_ = store.Close()
	}
}

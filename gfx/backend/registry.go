package backend

import (
	"sort"
	"sync"
)

// Factory creates a new backend instance.
type Factory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
)

// backendPriority orders Default's selection, first available wins.
var backendPriority = []string{BackendGL, BackendHeadless}

// Register makes a backend available under the given name, replacing any
// previous registration. Backend packages call this from init().
func Register(name string, factory Factory) {
	registryMu.Lock()
	backends[name] = factory
	registryMu.Unlock()
}

// Unregister removes a backend from the registry. Mainly for tests.
func Unregister(name string) {
	registryMu.Lock()
	delete(backends, name)
	registryMu.Unlock()
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a new instance of the named backend, or nil if it is not
// registered.
func Get(name string) Backend {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend, preferring gl over headless.
// Returns nil if no backend is registered.
func Default() Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		factory, ok := backends[name]
		if !ok {
			continue
		}
		if b := factory(); b != nil {
			return b
		}
	}
	return nil
}

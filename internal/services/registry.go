// Package services implements the Lurch toolkit service layer: a registry of
// named services wiring settings, the declaration engine, notation
// conversion, annotations, markdown rendering, themes, and autocompletion
// together for the shell and CLI.
package services

import (
	"fmt"
	"maps"
	"sync"

	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// Registry holds the named services that make up a running toolkit
// instance. Registration happens once at startup, lookups happen on
// every command, so reads take the shared lock.
type Registry struct {
	mu       sync.RWMutex
	services map[string]lurchtypes.Service
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{services: make(map[string]lurchtypes.Service)}
}

// RegisterService adds a service under its own Name. Registering the
// same name twice is an error rather than a silent replacement.
func (r *Registry) RegisterService(service lurchtypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if _, dup := r.services[name]; dup {
		return fmt.Errorf("service %s already registered", name)
	}
	r.services[name] = service
	return nil
}

// GetService looks up a service by name.
func (r *Registry) GetService(name string) (lurchtypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[name]
	if !ok {
		return nil, fmt.Errorf("service %s not found", name)
	}
	return svc, nil
}

// HasService reports whether a service with the given name is registered.
func (r *Registry) HasService(name string) bool {
	_, err := r.GetService(name)
	return err == nil
}

// InitializeAll initializes every registered service. Services do not
// depend on each other during Initialize, so order does not matter.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, svc := range r.services {
		if err := svc.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service %s: %w", name, err)
		}
	}
	return nil
}

// GetAllServices returns a snapshot of the registered services.
func (r *Registry) GetAllServices() map[string]lurchtypes.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]lurchtypes.Service, len(r.services))
	maps.Copy(snapshot, r.services)
	return snapshot
}

// GlobalRegistry backs the package-level accessors below. Production
// code swaps it never, tests swap it per test via SetGlobalRegistry.
var (
	GlobalRegistry   = NewRegistry()
	globalRegistryMu sync.RWMutex
)

// GetGlobalRegistry returns the process-wide registry.
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry replaces the process-wide registry.
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}

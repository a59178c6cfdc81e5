package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// stubService is a minimal service for registry tests.
type stubService struct {
	name        string
	initErr     error
	initialized bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Initialize() error {
	if s.initErr != nil {
		return s.initErr
	}
	s.initialized = true
	return nil
}

// setupServiceRegistry swaps in a fresh global registry holding the given
// services, initialized, and restores the old registry after the test.
func setupServiceRegistry(t *testing.T, serviceList ...lurchtypes.Service) {
	t.Helper()

	oldRegistry := GetGlobalRegistry()
	SetGlobalRegistry(NewRegistry())

	for _, service := range serviceList {
		require.NoError(t, GetGlobalRegistry().RegisterService(service))
	}
	require.NoError(t, GetGlobalRegistry().InitializeAll())

	t.Cleanup(func() {
		SetGlobalRegistry(oldRegistry)
	})
}

func TestRegistry_RegisterService(t *testing.T) {
	registry := NewRegistry()

	err := registry.RegisterService(&stubService{name: "alpha"})
	assert.NoError(t, err)

	// Duplicate registration is an error
	err = registry.RegisterService(&stubService{name: "alpha"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_GetService(t *testing.T) {
	registry := NewRegistry()
	service := &stubService{name: "alpha"}
	require.NoError(t, registry.RegisterService(service))

	got, err := registry.GetService("alpha")
	assert.NoError(t, err)
	assert.Same(t, service, got)

	_, err = registry.GetService("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRegistry_HasService(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&stubService{name: "alpha"}))

	assert.True(t, registry.HasService("alpha"))
	assert.False(t, registry.HasService("beta"))
}

func TestRegistry_InitializeAll(t *testing.T) {
	registry := NewRegistry()
	first := &stubService{name: "first"}
	second := &stubService{name: "second"}
	require.NoError(t, registry.RegisterService(first))
	require.NoError(t, registry.RegisterService(second))

	err := registry.InitializeAll()
	assert.NoError(t, err)
	assert.True(t, first.initialized)
	assert.True(t, second.initialized)
}

func TestRegistry_InitializeAllPropagatesErrors(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&stubService{
		name:    "broken",
		initErr: errors.New("boom"),
	}))

	err := registry.InitializeAll()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize service broken")
}

func TestRegistry_GetAllServices(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&stubService{name: "alpha"}))
	require.NoError(t, registry.RegisterService(&stubService{name: "beta"}))

	all := registry.GetAllServices()
	assert.Len(t, all, 2)
	assert.Contains(t, all, "alpha")
	assert.Contains(t, all, "beta")

	// The returned map is a copy
	delete(all, "alpha")
	assert.True(t, registry.HasService("alpha"))
}

func TestGlobalRegistrySwap(t *testing.T) {
	oldRegistry := GetGlobalRegistry()
	defer SetGlobalRegistry(oldRegistry)

	replacement := NewRegistry()
	SetGlobalRegistry(replacement)
	assert.Same(t, replacement, GetGlobalRegistry())
}

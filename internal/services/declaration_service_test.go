package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurchmath/lurchmath-sub002/internal/declaration"
	"github.com/lurchmath/lurchmath-sub002/internal/settings"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// setupDeclarationTestRegistry registers the services declaration operations
// depend on and returns the settings service for test configuration.
func setupDeclarationTestRegistry(t *testing.T) (*SettingsService, *DeclarationService) {
	t.Helper()

	settingsService := NewSettingsServiceWithStore(settings.NewMemoryStore())
	declarationService := NewDeclarationService()
	setupServiceRegistry(t, settingsService, NewNotationService(), declarationService)
	return settingsService, declarationService
}

// typeFor finds the declaration type with the given kind and body position.
func typeFor(t *testing.T, types []*declaration.Type, kind lurchtypes.DeclarationKind, position lurchtypes.BodyPosition) *declaration.Type {
	t.Helper()
	for _, typ := range types {
		if typ.Kind() == kind && typ.BodyPosition() == position {
			return typ
		}
	}
	t.Fatalf("no type with kind %s and body position %s", kind, position)
	return nil
}

func TestDeclarationService_Name(t *testing.T) {
	service := NewDeclarationService()
	assert.Equal(t, "declaration", service.Name())
}

func TestDeclarationService_ConfiguredTypes(t *testing.T) {
	settingsService, declarationService := setupDeclarationTestRegistry(t)

	// Defaults configure all six phrasings
	types, err := declarationService.ConfiguredTypes()
	require.NoError(t, err)
	assert.Len(t, types, 6)

	// Two configured phrasings, completion fills the other four pairs
	require.NoError(t, settingsService.Set("declaration type templates",
		"Let [variable] be arbitrary\nFor some [constant], [statement]"))
	types, err = declarationService.ConfiguredTypes()
	require.NoError(t, err)
	assert.Len(t, types, 6)

	// Without completion only the configured phrasings remain
	require.NoError(t, settingsService.Set("complete missing phrasings", "false"))
	types, err = declarationService.ConfiguredTypes()
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, lurchtypes.KindVariable, types[0].Kind())
	assert.Equal(t, lurchtypes.KindConstant, types[1].Kind())
}

func TestDeclarationService_MatchAll(t *testing.T) {
	_, declarationService := setupDeclarationTestRegistry(t)

	results, err := declarationService.MatchAll("Let x be arb")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, result := range results {
		assert.Equal(t, "x", result.Symbol)
		assert.Equal(t, lurchtypes.KindVariable, result.Type.Kind())
	}

	results, err = declarationService.MatchAll("nothing declarative here")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDeclarationService_Render(t *testing.T) {
	_, declarationService := setupDeclarationTestRegistry(t)

	types, err := declarationService.Types(true)
	require.NoError(t, err)

	arbitrary := typeFor(t, types, lurchtypes.KindVariable, lurchtypes.BodyNone)
	forms, err := declarationService.Render(arbitrary, "x", "")
	require.NoError(t, err)
	assert.Equal(t, "Let x be arbitrary", forms.Display)
	assert.Equal(t, "Let x be arbitrary", forms.Document)
	assert.Equal(t, "Let x be arbitrary", forms.Typeset)
	assert.Equal(t, "Let x", forms.Structured)

	existential := typeFor(t, types, lurchtypes.KindConstant, lurchtypes.BodyAfter)
	forms, err = declarationService.Render(existential, "k", "m = 2k")
	require.NoError(t, err)
	assert.Equal(t, "For some k, ...", forms.Display)
	assert.Equal(t, "For some k, m = 2k", forms.Document)
	assert.Equal(t, "For some k, m = 2k", forms.Typeset)
	assert.Equal(t, "m = 2k for some k", forms.Structured)
}

func TestDeclarationService_Resolve(t *testing.T) {
	_, declarationService := setupDeclarationTestRegistry(t)

	types, err := declarationService.Types(true)
	require.NoError(t, err)
	arbitrary := typeFor(t, types, lurchtypes.KindVariable, lurchtypes.BodyNone)

	node, err := declarationService.Resolve(arbitrary, "x", nil)
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Contains(t, node.String(), "x")

	// A body-position phrasing rejects a missing body
	existential := typeFor(t, types, lurchtypes.KindConstant, lurchtypes.BodyAfter)
	_, err = declarationService.Resolve(existential, "k", nil)
	assert.ErrorIs(t, err, declaration.ErrBodyRequired)
}

func TestDeclarationService_Uninitialized(t *testing.T) {
	service := NewDeclarationService()

	_, err := service.ConfiguredTypes()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	_, err = service.MatchAll("Let x")
	assert.Error(t, err)

	_, err = service.Render(nil, "x", "")
	assert.Error(t, err)

	_, err = service.Resolve(nil, "x", nil)
	assert.Error(t, err)
}

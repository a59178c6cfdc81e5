package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurchmath/lurchmath-sub002/internal/annotation"
	"github.com/lurchmath/lurchmath-sub002/internal/document"
	"github.com/lurchmath/lurchmath-sub002/internal/settings"
	"github.com/lurchmath/lurchmath-sub002/internal/testutils"
)

// containsText reports whether the ANSI-stripped rendering contains substr.
func containsText(s, substr string) bool {
	return strings.Contains(plain(s), substr)
}

// setupAnnotationTestRegistry registers the services annotation previews
// depend on and returns the settings and annotation services.
func setupAnnotationTestRegistry(t *testing.T) (*SettingsService, *AnnotationService) {
	t.Helper()

	settingsService := NewSettingsServiceWithStore(settings.NewMemoryStore())
	annotationService := NewAnnotationService(true)
	setupServiceRegistry(t, settingsService, NewNotationService(), NewMarkdownService(), annotationService)
	return settingsService, annotationService
}

func TestAnnotationService_Name(t *testing.T) {
	service := NewAnnotationService(false)
	assert.Equal(t, "annotation", service.Name())
}

func TestAnnotationService_CreateDeterministicIDs(t *testing.T) {
	testutils.ResetTestCounters()
	_, annotationService := setupAnnotationTestRegistry(t)

	first, err := annotationService.Create("x^2", "a square")
	require.NoError(t, err)
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", first.ID)

	second, err := annotationService.Create("y", "")
	require.NoError(t, err)
	assert.Equal(t, "00000002-0000-4000-8000-000000000002", second.ID)
}

func TestAnnotationService_CreateValidates(t *testing.T) {
	_, annotationService := setupAnnotationTestRegistry(t)

	_, err := annotationService.Create("   ", "")
	assert.ErrorIs(t, err, annotation.ErrEmptyContent)

	_, err = annotationService.Create("x^{2", "")
	assert.ErrorIs(t, err, annotation.ErrUnbalanced)

	assert.NoError(t, annotationService.Validate("x^2"))
	assert.ErrorIs(t, annotationService.Validate("$x"), annotation.ErrUnbalanced)
}

func TestAnnotationService_PreviewHonorsNotesSetting(t *testing.T) {
	settingsService, annotationService := setupAnnotationTestRegistry(t)

	expository, err := annotationService.Create("x^2", "a square")
	require.NoError(t, err)

	preview, err := annotationService.Preview(expository)
	require.NoError(t, err)
	assert.Equal(t, "x² (a square)", preview)

	require.NoError(t, settingsService.Set("expository notes in previews", "false"))
	preview, err = annotationService.Preview(expository)
	require.NoError(t, err)
	assert.Equal(t, "x²", preview)

	// The annotation itself keeps its note
	assert.Equal(t, "a square", expository.Note)
}

func TestAnnotationService_MarkdownPreview(t *testing.T) {
	_, annotationService := setupAnnotationTestRegistry(t)

	expository, err := annotationService.Create("e^{i\\pi} = -1", "Euler")
	require.NoError(t, err)

	rendered, err := annotationService.MarkdownPreview(expository)
	require.NoError(t, err)
	assert.True(t, containsText(rendered, "Expository math."))
	assert.True(t, containsText(rendered, "Euler"))
}

func TestAnnotationService_AttachFindRemove(t *testing.T) {
	_, annotationService := setupAnnotationTestRegistry(t)

	doc := document.New()
	expository, err := annotationService.Create("a + b", "")
	require.NoError(t, err)

	node, err := annotationService.Attach(doc, expository)
	require.NoError(t, err)
	require.NotNil(t, node)

	found, err := annotationService.FindAll(doc)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, expository.ID, found[0].ID)

	removed, err := annotationService.Remove(doc, expository.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	found, err = annotationService.FindAll(doc)
	require.NoError(t, err)
	assert.Empty(t, found)

	removed, err = annotationService.Remove(doc, expository.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAnnotationService_Uninitialized(t *testing.T) {
	service := NewAnnotationService(true)

	_, err := service.Create("x", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	err = service.Validate("x")
	assert.Error(t, err)

	_, err = service.FindAll(document.New())
	assert.Error(t, err)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurchmath/lurchmath-sub002/internal/settings"
)

func TestThemeService_Name(t *testing.T) {
	service := NewThemeService()
	assert.Equal(t, "theme", service.Name())
}

func TestThemeService_LoadsEmbeddedThemes(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())

	assert.Equal(t, []string{"dark", "default", "plain"}, service.GetAvailableThemes())

	for _, name := range []string{"default", "dark", "plain"} {
		theme, exists := service.GetTheme(name)
		assert.True(t, exists, "theme %s should exist", name)
		assert.Equal(t, name, theme.Name)
	}
}

func TestThemeService_GetThemeByName(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())

	assert.Equal(t, "dark", service.GetThemeByName("dark").Name)
	assert.Equal(t, "dark", service.GetThemeByName("DARK").Name)
	assert.Equal(t, "dark", service.GetThemeByName("  dark  ").Name)
	assert.Equal(t, "default", service.GetThemeByName("default").Name)
	assert.Equal(t, "plain", service.GetThemeByName("plain").Name)
	assert.Equal(t, "plain", service.GetThemeByName("").Name)
	assert.Equal(t, "plain", service.GetThemeByName("bogus").Name)
}

func TestThemeService_GetDefaultTheme(t *testing.T) {
	service := NewThemeService()

	// Works before initialization
	theme := service.GetDefaultTheme()
	require.NotNil(t, theme)
	assert.Equal(t, "plain", theme.Name)

	require.NoError(t, service.Initialize())
	theme = service.GetDefaultTheme()
	require.NotNil(t, theme)
	assert.Equal(t, "plain", theme.Name)
}

func TestThemeService_ActiveTheme(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())

	// Without a settings service a valid theme still comes back
	theme := service.ActiveTheme()
	require.NotNil(t, theme)
	assert.Contains(t, []string{"default", "dark", "plain"}, theme.Name)

	settingsService := NewSettingsServiceWithStore(settings.NewMemoryStore())
	setupServiceRegistry(t, settingsService)
	require.NoError(t, settingsService.Set("color scheme", "dark"))

	// On color terminals the configured scheme applies; without color
	// support the plain theme wins either way.
	theme = service.ActiveTheme()
	require.NotNil(t, theme)
	assert.Contains(t, []string{"dark", "plain"}, theme.Name)
}

func TestThemeService_DeclarationHighlight(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())

	settingsService := NewSettingsServiceWithStore(settings.NewMemoryStore())
	setupServiceRegistry(t, settingsService)
	require.NoError(t, settingsService.Set("declaration highlight color", "#ff0000"))

	style := service.DeclarationHighlight()
	assert.Contains(t, style.Render("x"), "x")
}

func TestTheme_CreateSimpleList(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())
	theme := service.GetThemeByName("plain")

	rendered := theme.CreateSimpleList([]string{"Let x be arbitrary", "Reserve a new symbol c"}).String()
	assert.Contains(t, rendered, "Let x be arbitrary")
	assert.Contains(t, rendered, "Reserve a new symbol c")
}

func TestTheme_CreateGroupedList(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())
	theme := service.GetThemeByName("plain")

	rendered := theme.CreateGroupedList(map[string][]string{
		"Variables": {"Let x be arbitrary"},
		"Constants": {"Reserve a new symbol c"},
		"Empty":     {},
	}).String()

	assert.Contains(t, rendered, "Variables")
	assert.Contains(t, rendered, "Constants")
	assert.Contains(t, rendered, "Let x be arbitrary")
	assert.Contains(t, rendered, "Reserve a new symbol c")
	assert.NotContains(t, rendered, "Empty")
}

func TestTheme_CreatePairList(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())
	theme := service.GetThemeByName("plain")

	rendered := theme.CreatePairList(
		[]string{"color scheme", "dollar sign shortcut"},
		map[string]string{
			"color scheme":         "dark",
			"dollar sign shortcut": "true",
		},
	).String()

	assert.Contains(t, rendered, "color scheme = dark")
	assert.Contains(t, rendered, "dollar sign shortcut = true")
}

func TestGetGlobalThemeService(t *testing.T) {
	service := NewThemeService()
	setupServiceRegistry(t, service)

	got, err := GetGlobalThemeService()
	require.NoError(t, err)
	assert.Same(t, service, got)
}

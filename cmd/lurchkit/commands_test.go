package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurchmath/lurchmath-sub002/internal/document"
	"github.com/lurchmath/lurchmath-sub002/internal/services"
	"github.com/lurchmath/lurchmath-sub002/internal/shell"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// setupCommandTestEnvironment gives each test a fresh in-memory service
// registry so commands never touch the real settings file.
func setupCommandTestEnvironment(t *testing.T) {
	oldServiceRegistry := services.GetGlobalRegistry()
	services.SetGlobalRegistry(services.NewRegistry())

	oldTestMode := testMode
	testMode = true

	err := shell.InitializeServices(true)
	require.NoError(t, err)

	t.Cleanup(func() {
		services.SetGlobalRegistry(oldServiceRegistry)
		testMode = oldTestMode
	})
}

func TestResolveRenderType(t *testing.T) {
	tests := []struct {
		name         string
		kind         string
		bodyPosition string
		template     string
		wantErr      bool
		wantKind     lurchtypes.DeclarationKind
		wantPosition lurchtypes.BodyPosition
	}{
		{
			name:         "defaults to a bare variable declaration",
			kind:         "variable",
			bodyPosition: "none",
			wantKind:     lurchtypes.KindVariable,
			wantPosition: lurchtypes.BodyNone,
		},
		{
			name:         "constant with trailing body",
			kind:         "constant",
			bodyPosition: "after",
			wantKind:     lurchtypes.KindConstant,
			wantPosition: lurchtypes.BodyAfter,
		},
		{
			name:         "template overrides kind and position",
			kind:         "variable",
			bodyPosition: "none",
			template:     "[statement], for some [constant]",
			wantKind:     lurchtypes.KindConstant,
			wantPosition: lurchtypes.BodyBefore,
		},
		{
			name:         "unknown kind",
			kind:         "function",
			bodyPosition: "none",
			wantErr:      true,
		},
		{
			name:         "unknown body position",
			kind:         "variable",
			bodyPosition: "middle",
			wantErr:      true,
		},
		{
			name:         "template without a symbol placeholder",
			kind:         "variable",
			bodyPosition: "none",
			template:     "Let something be arbitrary",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderKind = tt.kind
			renderBodyPosition = tt.bodyPosition
			renderTemplate = tt.template
			t.Cleanup(func() {
				renderKind = "variable"
				renderBodyPosition = "none"
				renderTemplate = ""
			})

			typ, err := resolveRenderType()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, typ.Kind())
			assert.Equal(t, tt.wantPosition, typ.BodyPosition())
		})
	}
}

func TestSplitSettingArgs(t *testing.T) {
	keys := []string{"color scheme", "preview width in columns", "declaration type templates"}

	tests := []struct {
		name      string
		args      []string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{
			name:      "unquoted multi word key",
			args:      []string{"color", "scheme", "dark"},
			wantKey:   "color scheme",
			wantValue: "dark",
			wantOK:    true,
		},
		{
			name:      "quoted key wins exactly",
			args:      []string{"color scheme", "dark"},
			wantKey:   "color scheme",
			wantValue: "dark",
			wantOK:    true,
		},
		{
			name:      "longest key is preferred",
			args:      []string{"preview", "width", "in", "columns", "132"},
			wantKey:   "preview width in columns",
			wantValue: "132",
			wantOK:    true,
		},
		{
			name:      "value keeps its spaces",
			args:      []string{"declaration type templates", "Let [variable] be arbitrary"},
			wantKey:   "declaration type templates",
			wantValue: "Let [variable] be arbitrary",
			wantOK:    true,
		},
		{
			name:   "no key matches",
			args:   []string{"nonsense", "1"},
			wantOK: false,
		},
		{
			name:   "key without a value",
			args:   []string{"color", "scheme"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := splitSettingArgs(keys, tt.args)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKey, key)
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestRunSettingsSetAndReset(t *testing.T) {
	setupCommandTestEnvironment(t)

	runSettingsSet(nil, []string{"color", "scheme", "dark"})

	service, err := services.GetGlobalSettingsService()
	require.NoError(t, err)
	assert.Equal(t, "dark", service.Get("color scheme"))

	runSettingsReset(nil, []string{"color", "scheme"})
	assert.Equal(t, "default", service.Get("color scheme"))
}

func TestRunDocNewAppendsConfiguredExtension(t *testing.T) {
	setupCommandTestEnvironment(t)

	path := filepath.Join(t.TempDir(), "notes")
	runDocNew(nil, []string{path})

	_, err := os.Stat(path + ".lurch")
	assert.NoError(t, err)
}

func TestRunDocAnnotateRoundTrip(t *testing.T) {
	setupCommandTestEnvironment(t)

	path := filepath.Join(t.TempDir(), "notes.lurch")
	runDocNew(nil, []string{path})

	annotateLatex = "x^2"
	annotateNote = "a square"
	t.Cleanup(func() {
		annotateLatex = ""
		annotateNote = ""
	})
	runDocAnnotate(nil, []string{path})

	doc, err := document.LoadFile(path)
	require.NoError(t, err)

	annotationService, err := services.GetGlobalAnnotationService()
	require.NoError(t, err)
	annotations, err := annotationService.FindAll(doc)
	require.NoError(t, err)
	require.Len(t, annotations, 1)
	assert.Equal(t, "x^2", annotations[0].Latex)
	assert.Equal(t, "a square", annotations[0].Note)
	assert.NotEmpty(t, annotations[0].ID)
}

func TestRunDocMetaSetKeepsJSONTypes(t *testing.T) {
	setupCommandTestEnvironment(t)

	path := filepath.Join(t.TempDir(), "notes.lurch")
	runDocNew(nil, []string{path})

	runDocMetaSet(nil, []string{path, "settings", "preview width in columns", "132"})
	runDocMetaSet(nil, []string{path, "settings", "color scheme", "dark"})

	doc, err := document.LoadFile(path)
	require.NoError(t, err)

	var width any
	found, err := doc.GetMetadata("settings", "preview width in columns", &width)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, float64(132), width)

	var scheme any
	found, err = doc.GetMetadata("settings", "color scheme", &scheme)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "dark", scheme)
}

func TestValidateScriptFile(t *testing.T) {
	dir := t.TempDir()

	err := validateScriptFile(filepath.Join(dir, "missing.lsh"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such script file")

	wrongExt := filepath.Join(dir, "session.txt")
	require.NoError(t, os.WriteFile(wrongExt, []byte(".templates\n"), 0o644))
	err = validateScriptFile(wrongExt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".lsh extension")

	script := filepath.Join(dir, "session.lsh")
	require.NoError(t, os.WriteFile(script, []byte(".templates\n"), 0o644))
	assert.NoError(t, validateScriptFile(script))
}

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurchmath/lurchmath-sub002/internal/declaration"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

func newTestSettings(t *testing.T) *Settings {
	t.Helper()
	schema, err := LoadSchema()
	require.NoError(t, err)
	return New(schema, NewMemoryStore())
}

func TestLoadSchema(t *testing.T) {
	schema, err := LoadSchema()
	require.NoError(t, err)

	assert.NotEmpty(t, schema.Categories)
	assert.NotEmpty(t, schema.Keys())

	// Every defined default must satisfy its own definition.
	for _, key := range schema.Keys() {
		def, ok := schema.Definition(key)
		require.True(t, ok)
		assert.NoError(t, ValidateValue(def, def.Default), "default for %q", key)
	}
}

func TestCatalogTemplatesMatchEngineDefaults(t *testing.T) {
	schema, err := LoadSchema()
	require.NoError(t, err)

	def, ok := schema.Definition(declaration.TemplatesSettingKey)
	require.True(t, ok, "catalog must define the templates setting")
	assert.Equal(t, lurchtypes.SettingLongText, def.Type)
	assert.Equal(t, declaration.DefaultTemplatesSetting(), def.Default)
}

func TestParseSchemaRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		wantErr string
	}{
		{
			"duplicate key",
			"categories:\n  - name: A\n    settings:\n      - key: x\n        type: text\n      - key: x\n        type: text\n",
			"duplicate key",
		},
		{
			"missing key",
			"categories:\n  - name: A\n    settings:\n      - label: X\n        type: text\n",
			"no key",
		},
		{
			"default violates definition",
			"categories:\n  - name: A\n    settings:\n      - key: n\n        type: int\n        default: ten\n",
			"default for",
		},
		{
			"not yaml",
			"{{{",
			"failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSchema([]byte(tt.catalog))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetLayering(t *testing.T) {
	s := newTestSettings(t)

	// Catalog default.
	assert.Equal(t, "default", s.Get("color scheme"))

	// Stored value wins over the default.
	require.NoError(t, s.Set("color scheme", "dark"))
	assert.Equal(t, "dark", s.Get("color scheme"))

	// Override wins over the stored value.
	s.overrides["color scheme"] = "plain"
	assert.Equal(t, "plain", s.Get("color scheme"))

	// Unknown keys resolve to the empty string.
	assert.Equal(t, "", s.Get("no such key"))
}

func TestTypedGetters(t *testing.T) {
	s := newTestSettings(t)

	assert.True(t, s.GetBool("dollar sign shortcut"))
	assert.False(t, s.GetBool("developer mode on"))
	assert.Equal(t, 80, s.GetInt("preview width in columns"))

	require.NoError(t, s.Set("developer mode on", "yes"))
	assert.True(t, s.GetBool("developer mode on"))

	require.NoError(t, s.Set("preview width in columns", "120"))
	assert.Equal(t, 120, s.GetInt("preview width in columns"))

	// A corrupt stored value falls back to the catalog default.
	require.NoError(t, s.store.Set("preview width in columns", "wide"))
	assert.Equal(t, 80, s.GetInt("preview width in columns"))
	require.NoError(t, s.store.Set("dollar sign shortcut", "maybe"))
	assert.True(t, s.GetBool("dollar sign shortcut"))

	// Unknown keys yield zero values.
	assert.False(t, s.GetBool("no such key"))
	assert.Equal(t, 0, s.GetInt("no such key"))
}

func TestSetValidates(t *testing.T) {
	s := newTestSettings(t)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad bool", "dollar sign shortcut", "maybe"},
		{"non-integer", "preview width in columns", "wide"},
		{"below minimum", "preview width in columns", "10"},
		{"above maximum", "preview width in columns", "500"},
		{"unknown option", "color scheme", "solarized"},
		{"bad color", "declaration highlight color", "blue"},
		{"pattern mismatch", "document file extension", "lurch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
			// Nothing was stored.
			_, stored := s.store.Get(tt.key)
			assert.False(t, stored)
		})
	}

	t.Run("unknown key", func(t *testing.T) {
		err := s.Set("no such key", "value")
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("valid values pass", func(t *testing.T) {
		assert.NoError(t, s.Set("dollar sign shortcut", "off"))
		assert.NoError(t, s.Set("preview width in columns", "132"))
		assert.NoError(t, s.Set("color scheme", "plain"))
		assert.NoError(t, s.Set("declaration highlight color", "#AABB00"))
		assert.NoError(t, s.Set("document file extension", ".proof2"))
	})
}

func TestResetAndChanged(t *testing.T) {
	s := newTestSettings(t)
	assert.Empty(t, s.Changed())

	require.NoError(t, s.Set("color scheme", "dark"))
	require.NoError(t, s.Set("preview width in columns", "100"))
	assert.Equal(t, map[string]string{
		"color scheme":             "dark",
		"preview width in columns": "100",
	}, s.Changed())

	require.NoError(t, s.Reset("color scheme"))
	assert.Equal(t, "default", s.Get("color scheme"))
	assert.Equal(t, map[string]string{"preview width in columns": "100"}, s.Changed())

	assert.ErrorIs(t, s.Reset("no such key"), ErrUnknownKey)

	require.NoError(t, s.ResetAll())
	assert.Empty(t, s.Changed())
}

func TestExport(t *testing.T) {
	s := newTestSettings(t)
	export := s.Export()

	lines := strings.Split(strings.TrimRight(export, "\n"), "\n")
	assert.Len(t, lines, len(s.Keys()))
	assert.True(t, sortedLines(lines))

	// Multi-line values are quoted onto a single line.
	assert.Contains(t, export, `declaration type templates = "Let [variable] be arbitrary\n`)
	assert.Contains(t, export, "color scheme = default\n")
}

func sortedLines(lines []string) bool {
	for i := 1; i < len(lines); i++ {
		if lines[i-1] > lines[i] {
			return false
		}
	}
	return true
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "LURCH_COLOR_SCHEME", EnvName(EnvPrefix, "color scheme"))
	assert.Equal(t, "LURCH_DECLARATION_TYPE_TEMPLATES", EnvName(EnvPrefix, "declaration type templates"))
	assert.Equal(t, "X_A_B_C", EnvName("X_", "a.b-c"))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LURCH_COLOR_SCHEME", "dark")
	t.Setenv("LURCH_PREVIEW_WIDTH_IN_COLUMNS", "not a number")

	s := newTestSettings(t)
	s.LoadEnvOverrides(EnvPrefix)

	assert.Equal(t, "dark", s.Get("color scheme"))
	// The invalid override was ignored.
	assert.Equal(t, 80, s.GetInt("preview width in columns"))
	// Overrides never persist.
	_, stored := s.store.Get("color scheme")
	assert.False(t, stored)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "LURCH_COLOR_SCHEME=dark\nLURCH_DOLLAR_SIGN_SHORTCUT=off\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := newTestSettings(t)
	require.NoError(t, s.LoadDotEnv(path, EnvPrefix))
	assert.Equal(t, "dark", s.Get("color scheme"))
	assert.False(t, s.GetBool("dollar sign shortcut"))

	t.Run("process environment wins", func(t *testing.T) {
		t.Setenv("LURCH_COLOR_SCHEME", "plain")
		s := newTestSettings(t)
		s.LoadEnvOverrides(EnvPrefix)
		require.NoError(t, s.LoadDotEnv(path, EnvPrefix))
		assert.Equal(t, "plain", s.Get("color scheme"))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		s := newTestSettings(t)
		assert.NoError(t, s.LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"), EnvPrefix))
	})
}

package lurchtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclarationKind(t *testing.T) {
	t.Run("String values", func(t *testing.T) {
		assert.Equal(t, "variable", KindVariable.String())
		assert.Equal(t, "constant", KindConstant.String())
		assert.Equal(t, "DeclarationKind(7)", DeclarationKind(7).String())
	})

	t.Run("Placeholder values", func(t *testing.T) {
		assert.Equal(t, "[variable]", KindVariable.Placeholder())
		assert.Equal(t, "[constant]", KindConstant.Placeholder())
	})

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, KindVariable.Valid())
		assert.True(t, KindConstant.Valid())
		assert.False(t, DeclarationKind(-1).Valid())
		assert.False(t, DeclarationKind(2).Valid())
	})

	t.Run("Parse round trip", func(t *testing.T) {
		for _, kind := range []DeclarationKind{KindVariable, KindConstant} {
			parsed, err := ParseDeclarationKind(kind.String())
			assert.NoError(t, err)
			assert.Equal(t, kind, parsed)
		}
	})

	t.Run("Parse is case-insensitive and trims", func(t *testing.T) {
		parsed, err := ParseDeclarationKind("  Constant ")
		assert.NoError(t, err)
		assert.Equal(t, KindConstant, parsed)
	})

	t.Run("Parse rejects unknown kinds", func(t *testing.T) {
		_, err := ParseDeclarationKind("predicate")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "predicate")
	})
}

func TestBodyPosition(t *testing.T) {
	t.Run("String values", func(t *testing.T) {
		assert.Equal(t, "none", BodyNone.String())
		assert.Equal(t, "before", BodyBefore.String())
		assert.Equal(t, "after", BodyAfter.String())
		assert.Equal(t, "BodyPosition(9)", BodyPosition(9).String())
	})

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, BodyNone.Valid())
		assert.True(t, BodyBefore.Valid())
		assert.True(t, BodyAfter.Valid())
		assert.False(t, BodyPosition(3).Valid())
	})

	t.Run("Parse round trip", func(t *testing.T) {
		for _, pos := range []BodyPosition{BodyNone, BodyBefore, BodyAfter} {
			parsed, err := ParseBodyPosition(pos.String())
			assert.NoError(t, err)
			assert.Equal(t, pos, parsed)
		}
	})

	t.Run("Parse rejects unknown positions", func(t *testing.T) {
		_, err := ParseBodyPosition("inside")
		assert.Error(t, err)
	})
}

func TestSettingsProviderFunc(t *testing.T) {
	provider := SettingsProviderFunc(func(key string) string {
		if key == "application name" {
			return "Lurch"
		}
		return ""
	})

	assert.Equal(t, "Lurch", provider.Get("application name"))
	assert.Equal(t, "", provider.Get("missing"))
}

func TestSettingsSchema(t *testing.T) {
	schema := &SettingsSchema{
		Version: "1",
		Categories: []SettingCategory{
			{
				Name: "Editor appearance",
				Settings: []SettingDefinition{
					{Key: "application name", Type: SettingText, Default: "Lurch"},
					{Key: "notation", Type: SettingCategorical, Options: []string{"latex", "lurch"}},
					{Key: "about", Type: SettingNote, Description: "explanatory text"},
				},
			},
			{
				Name: "Advanced",
				Settings: []SettingDefinition{
					{Key: "declaration type templates", Type: SettingLongText},
				},
			},
		},
	}

	t.Run("Definition finds keys across categories", func(t *testing.T) {
		def, ok := schema.Definition("declaration type templates")
		assert.True(t, ok)
		assert.Equal(t, SettingLongText, def.Type)

		_, ok = schema.Definition("no such key")
		assert.False(t, ok)
	})

	t.Run("Keys skips notes and preserves order", func(t *testing.T) {
		keys := schema.Keys()
		assert.Equal(t, []string{"application name", "notation", "declaration type templates"}, keys)
	})
}

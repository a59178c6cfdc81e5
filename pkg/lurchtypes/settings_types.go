// Package lurchtypes provides type definitions for the Lurch toolkit settings
// system. This file defines the schema structures parsed from the embedded
// settings catalog: categories of typed setting definitions, each carrying its
// default value and validation constraints.
package lurchtypes

// SettingType classifies a setting definition. The type drives both validation
// of stored values and the dialog control generated for the setting.
type SettingType string

const (
	// SettingBool is a true/false setting, rendered as a checkbox.
	SettingBool SettingType = "bool"
	// SettingText is a single-line text setting, rendered as an input field.
	SettingText SettingType = "text"
	// SettingLongText is a multi-line text setting, rendered as a textarea.
	SettingLongText SettingType = "longtext"
	// SettingCategorical is a choice from a fixed option list, rendered as a
	// select box.
	SettingCategorical SettingType = "category"
	// SettingInt is an integer setting with optional bounds.
	SettingInt SettingType = "int"
	// SettingColor is a CSS hex color such as "#aacc00".
	SettingColor SettingType = "color"
	// SettingNote is explanatory dialog text with no stored value.
	SettingNote SettingType = "note"
)

// SettingDefinition describes one setting: its storage key, its presentation
// in the settings dialog, its default, and the constraints stored values must
// satisfy.
type SettingDefinition struct {
	Key         string      `yaml:"key" json:"key"`                                     // Storage key (e.g. "declaration type templates")
	Label       string      `yaml:"label" json:"label"`                                 // Human-readable dialog label
	Type        SettingType `yaml:"type" json:"type"`                                   // Value type, drives validation and control choice
	Default     string      `yaml:"default,omitempty" json:"default,omitempty"`         // Default value as a string
	Description string      `yaml:"description,omitempty" json:"description,omitempty"` // Longer help text shown in the dialog
	Options     []string    `yaml:"options,omitempty" json:"options,omitempty"`         // Allowed values for category settings
	Min         *int        `yaml:"min,omitempty" json:"min,omitempty"`                 // Lower bound for int settings
	Max         *int        `yaml:"max,omitempty" json:"max,omitempty"`                 // Upper bound for int settings
	Pattern     string      `yaml:"pattern,omitempty" json:"pattern,omitempty"`         // Regexp stored text values must match
	Hidden      bool        `yaml:"hidden,omitempty" json:"hidden,omitempty"`           // Stored and validated but absent from the dialog
}

// SettingCategory groups related setting definitions under one dialog tab.
type SettingCategory struct {
	Name     string              `yaml:"name" json:"name"`         // Tab title (e.g. "Advanced")
	Settings []SettingDefinition `yaml:"settings" json:"settings"` // Definitions shown on this tab, in order
}

// SettingsSchema is the complete settings catalog: every category of setting
// the application knows about, in dialog order. It is the root structure for
// the embedded YAML catalog data.
type SettingsSchema struct {
	Version    string            `yaml:"version" json:"version"`       // Catalog schema version
	Categories []SettingCategory `yaml:"categories" json:"categories"` // Dialog tabs, in order
}

// Definition returns the definition for the given storage key, searching all
// categories, or false when no definition carries that key.
func (s *SettingsSchema) Definition(key string) (SettingDefinition, bool) {
	for _, cat := range s.Categories {
		for _, def := range cat.Settings {
			if def.Key == key {
				return def, true
			}
		}
	}
	return SettingDefinition{}, false
}

// Keys returns every storage key defined by the schema, in catalog order.
// Note definitions carry no stored value and are skipped.
func (s *SettingsSchema) Keys() []string {
	var keys []string
	for _, cat := range s.Categories {
		for _, def := range cat.Settings {
			if def.Type == SettingNote {
				continue
			}
			keys = append(keys, def.Key)
		}
	}
	return keys
}

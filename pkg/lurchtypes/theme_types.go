// Package lurchtypes defines theme-related data structures for the Lurch
// toolkit's terminal rendering. This file contains the core types for
// representing and managing theme configurations.
package lurchtypes

// ThemeConfig represents a theme configuration loaded from YAML.
// It defines the color and style settings for the semantic elements the
// toolkit prints: declaration phrases, symbols, placeholders, and messages.
type ThemeConfig struct {
	// Name is the theme identifier (e.g., "default", "dark", "plain")
	Name string `yaml:"name" json:"name"`

	// Description provides a brief description of the theme
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Styles contains the color and style definitions for different semantic elements
	Styles ThemeStyles `yaml:"styles" json:"styles"`
}

// ThemeStyles defines the styling configuration for different semantic
// elements. Each style can specify foreground color, background color, and
// text decorations.
type ThemeStyles struct {
	// Phrase style for declaration phrase text around the placeholders
	Phrase StyleConfig `yaml:"phrase" json:"phrase"`

	// Symbol style for declared symbols and captured match results
	Symbol StyleConfig `yaml:"symbol" json:"symbol"`

	// Placeholder style for [variable], [constant] and [statement] markers
	Placeholder StyleConfig `yaml:"placeholder" json:"placeholder"`

	// Key style for setting keys and metadata keys
	Key StyleConfig `yaml:"key" json:"key"`

	// Success style for success messages and positive feedback
	Success StyleConfig `yaml:"success" json:"success"`

	// Error style for error messages
	Error StyleConfig `yaml:"error" json:"error"`

	// Warning style for warning messages
	Warning StyleConfig `yaml:"warning" json:"warning"`

	// Info style for informational messages
	Info StyleConfig `yaml:"info" json:"info"`

	// Highlight style for emphasized text and selections
	Highlight StyleConfig `yaml:"highlight" json:"highlight"`

	// List style for list enumerators and bullet points
	List StyleConfig `yaml:"list" json:"list"`
}

// StyleConfig defines the visual styling for a semantic element.
// Colors can be plain values or adaptive pairs for light/dark terminals.
type StyleConfig struct {
	// Foreground color - can be hex color, named color, or adaptive color object
	Foreground interface{} `yaml:"foreground,omitempty" json:"foreground,omitempty"`

	// Background color - can be hex color, named color, or adaptive color object
	Background interface{} `yaml:"background,omitempty" json:"background,omitempty"`

	// Bold text decoration
	Bold *bool `yaml:"bold,omitempty" json:"bold,omitempty"`

	// Italic text decoration
	Italic *bool `yaml:"italic,omitempty" json:"italic,omitempty"`

	// Underline text decoration
	Underline *bool `yaml:"underline,omitempty" json:"underline,omitempty"`
}

// AdaptiveColor defines colors that adapt to light and dark terminal
// backgrounds, so one theme works in both environments.
type AdaptiveColor struct {
	// Light color for light terminal backgrounds
	Light string `yaml:"light" json:"light"`

	// Dark color for dark terminal backgrounds
	Dark string `yaml:"dark" json:"dark"`
}

// ThemeFile represents a complete theme file loaded from YAML.
// Each theme file contains a single ThemeConfig with all styling information.
type ThemeFile struct {
	ThemeConfig `yaml:",inline" json:",inline"`
}

// Package lurchtypes defines notation conversion types for the Lurch toolkit.
// This file contains the formats mathematical text can carry and the contract
// for converting between them.
package lurchtypes

// Format names a notation that a piece of mathematical text is written in.
type Format string

const (
	// FormatLatex is LaTeX source, the format declaration templates and
	// expository annotations store their mathematics in.
	FormatLatex Format = "latex"
	// FormatHTML is display-ready HTML markup.
	FormatHTML Format = "html"
	// FormatText is plain terminal text.
	FormatText Format = "text"
)

// Converter converts mathematical text between notation formats.
// Conversions are synchronous; an implementation must be ready to convert as
// soon as it is constructed, so callers never wait on background setup.
type Converter interface {
	// Convert renders text written in the from format into the to format.
	// Implementations return an error for format pairs they do not support.
	Convert(text string, from, to Format) (string, error)
	// Supports reports whether Convert can handle the given format pair.
	Supports(from, to Format) bool
}

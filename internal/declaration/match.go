package declaration

import (
	"regexp"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

var (
	// The statement placeholder is stripped for matching together with the
	// comma that separates it from the phrase, so a template like
	// "For some [constant], [statement]" matches "For some k" exactly.
	statementAtStartPattern = regexp.MustCompile(`^\[statement\]\s*,?\s*`)
	statementAtEndPattern   = regexp.MustCompile(`\s*,?\s*\[statement\]$`)

	symbolRunPattern = regexp.MustCompile(`^\w+`)
)

// matchParts splits a template into the text before and after its symbol
// placeholder, with the statement placeholder and its separator stripped and
// whitespace normalized. The suffix is trimmed; the prefix keeps its trailing
// space so "Let x" matches "Let [variable] ..." but "Letx" does not.
func matchParts(kind lurchtypes.DeclarationKind, template string) (prefix, suffix string) {
	stripped := statementAtStartPattern.ReplaceAllString(template, "")
	stripped = statementAtEndPattern.ReplaceAllString(stripped, "")

	prefix, suffix, found := strings.Cut(stripped, kind.Placeholder())
	if !found {
		return "", ""
	}

	// Normalizing the prefix must keep its trailing boundary space.
	trailingSpace := prefix != strings.TrimRight(prefix, " \t\n")
	prefix = normalizeWhitespace(prefix)
	if prefix != "" && trailingSpace {
		prefix += " "
	}
	return prefix, normalizeWhitespace(suffix)
}

// Match reports whether text looks like a partially-typed instance of this
// declaration phrasing, and if so which symbol it names. The candidate must
// start with the template's prefix, continue with a word-character run (the
// symbol), and anything after that must be a prefix of the template's suffix.
// Comparison is case-insensitive, with whitespace runs collapsed. A failed
// match is a normal negative result, never an error.
func (t *Type) Match(text string) (string, bool) {
	candidate := normalizeWhitespace(text)

	if len(candidate) < len(t.matchPrefix) || !strings.EqualFold(candidate[:len(t.matchPrefix)], t.matchPrefix) {
		return "", false
	}

	rest := candidate[len(t.matchPrefix):]
	symbol := symbolRunPattern.FindString(rest)
	if symbol == "" {
		return "", false
	}

	remainder := strings.TrimSpace(rest[len(symbol):])
	if t.matchSuffix == "" {
		// Nothing follows the symbol in the phrase itself, so any trailing
		// text is the user typing the statement body.
		logger.TemplateMatch(t.template, text, symbol, true)
		return symbol, true
	}
	if len(remainder) > len(t.matchSuffix) || !strings.EqualFold(t.matchSuffix[:len(remainder)], remainder) {
		return "", false
	}

	logger.TemplateMatch(t.template, text, symbol, true)
	return symbol, true
}

// normalizeWhitespace collapses whitespace runs to single spaces and trims
// the ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

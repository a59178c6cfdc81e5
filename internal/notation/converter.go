// Package notation converts the small slice of LaTeX that declaration
// phrasings and expository annotations produce into terminal text or display
// HTML. It is deliberately not a LaTeX renderer: constructs outside its tables
// pass through verbatim so callers always get something readable back.
package notation

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// ErrUnsupportedConversion indicates a format pair the converter does not
// handle.
var ErrUnsupportedConversion = errors.New("unsupported conversion")

// PlainConverter implements lurchtypes.Converter for the conversions the
// toolkit needs: LaTeX to plain text, LaTeX to HTML, and text to HTML.
// A zero PlainConverter is ready to use; construction never blocks.
type PlainConverter struct{}

// NewPlainConverter returns a ready-to-use converter.
func NewPlainConverter() *PlainConverter {
	return &PlainConverter{}
}

// Convert renders text written in the from format into the to format.
// Identical formats return the input unchanged.
func (c *PlainConverter) Convert(text string, from, to lurchtypes.Format) (string, error) {
	if from == to {
		return text, nil
	}
	switch {
	case from == lurchtypes.FormatLatex && to == lurchtypes.FormatText:
		return c.latexToText(text), nil
	case from == lurchtypes.FormatLatex && to == lurchtypes.FormatHTML:
		return c.latexToHTML(text), nil
	case from == lurchtypes.FormatText && to == lurchtypes.FormatHTML:
		return html.EscapeString(text), nil
	default:
		return "", fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
	}
}

// Supports reports whether Convert can handle the given format pair.
func (c *PlainConverter) Supports(from, to lurchtypes.Format) bool {
	_, err := c.Convert("", from, to)
	return err == nil
}

var (
	uprightPattern = regexp.MustCompile(`\\(?:mathrm|text)\{([^{}]*)\}`)

	subscriptPattern   = regexp.MustCompile(`_(?:\{([^{}]+)\}|([0-9A-Za-z]))`)
	superscriptPattern = regexp.MustCompile(`\^(?:\{([^{}]+)\}|([0-9A-Za-z]))`)
)

// symbolReplacements maps LaTeX commands to their unicode equivalents.
// Longer commands come first so the replacer never matches a prefix of a
// longer command (\leq before \le, \le before \left).
var symbolReplacements = []string{
	`\Leftrightarrow`, "⇔",
	`\Rightarrow`, "⇒",
	`\rightarrow`, "→",
	`\leftarrow`, "←",
	`\subseteq`, "⊆",
	`\emptyset`, "∅",
	`\leq`, "≤",
	`\geq`, "≥",
	`\left(`, "(",
	`\right)`, ")",
	`\left[`, "[",
	`\right]`, "]",
	`\qquad`, "  ",
	`\quad`, " ",
	`\alpha`, "α",
	`\beta`, "β",
	`\gamma`, "γ",
	`\delta`, "δ",
	`\epsilon`, "ε",
	`\theta`, "θ",
	`\lambda`, "λ",
	`\mu`, "μ",
	`\pi`, "π",
	`\sigma`, "σ",
	`\phi`, "φ",
	`\psi`, "ψ",
	`\omega`, "ω",
	`\Gamma`, "Γ",
	`\Delta`, "Δ",
	`\Sigma`, "Σ",
	`\Omega`, "Ω",
	`\subset`, "⊂",
	`\notin`, "∉",
	`\infty`, "∞",
	`\forall`, "∀",
	`\exists`, "∃",
	`\approx`, "≈",
	`\equiv`, "≡",
	`\cdot`, "·",
	`\times`, "×",
	`\wedge`, "∧",
	`\sqrt`, "√",
	`\prod`, "∏",
	`\vee`, "∨",
	`\therefore`, "∴",
	`\cup`, "∪",
	`\cap`, "∩",
	`\sum`, "∑",
	`\int`, "∫",
	`\neg`, "¬",
	`\div`, "÷",
	`\ne`, "≠",
	`\le`, "≤",
	`\ge`, "≥",
	`\pm`, "±",
	`\in`, "∈",
	`\to`, "→",
	`\,`, " ",
	`\;`, " ",
	`\:`, " ",
	`\!`, "",
}

var symbolReplacer = strings.NewReplacer(symbolReplacements...)

var (
	subscriptDigits   = strings.NewReplacer("0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄", "5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉")
	superscriptDigits = strings.NewReplacer("0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴", "5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹")
)

func scriptGroup(match []string) string {
	if match[1] != "" {
		return match[1]
	}
	return match[2]
}

// latexToText renders LaTeX source as plain terminal text: upright wrappers
// unwrapped, known commands replaced by their unicode equivalents, digit
// scripts converted to unicode sub/superscripts, grouping braces and math
// delimiters dropped.
func (c *PlainConverter) latexToText(text string) string {
	out := uprightPattern.ReplaceAllString(text, "$1")
	out = symbolReplacer.Replace(out)
	out = subscriptPattern.ReplaceAllStringFunc(out, func(m string) string {
		group := scriptGroup(subscriptPattern.FindStringSubmatch(m))
		if isDigits(group) {
			return subscriptDigits.Replace(group)
		}
		return "_" + group
	})
	out = superscriptPattern.ReplaceAllStringFunc(out, func(m string) string {
		group := scriptGroup(superscriptPattern.FindStringSubmatch(m))
		if isDigits(group) {
			return superscriptDigits.Replace(group)
		}
		return "^" + group
	})
	out = strings.NewReplacer("{", "", "}", "", "$", "").Replace(out)
	return strings.TrimSpace(out)
}

// latexToHTML renders LaTeX source as display HTML. The input is escaped
// first; upright wrappers become spans so multi-character symbols render in
// roman style, scripts become sub/sup elements.
func (c *PlainConverter) latexToHTML(text string) string {
	out := html.EscapeString(text)
	out = uprightPattern.ReplaceAllString(out, `<span class="lurch-upright">$1</span>`)
	out = symbolReplacer.Replace(out)
	out = subscriptPattern.ReplaceAllStringFunc(out, func(m string) string {
		return "<sub>" + scriptGroup(subscriptPattern.FindStringSubmatch(m)) + "</sub>"
	})
	out = superscriptPattern.ReplaceAllStringFunc(out, func(m string) string {
		return "<sup>" + scriptGroup(superscriptPattern.FindStringSubmatch(m)) + "</sup>"
	})
	out = strings.NewReplacer("{", "", "}", "", "$", "").Replace(out)
	return strings.TrimSpace(out)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

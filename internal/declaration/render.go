package declaration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lurchmath/lurchmath-sub002/internal/document"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// DisplayForm renders the phrasing as plain text for menus and previews: the
// statement placeholder becomes a literal ellipsis, the symbol placeholder
// the raw symbol text.
func (t *Type) DisplayForm(symbol string) string {
	out := strings.Replace(t.template, lurchtypes.StatementPlaceholder, "...", 1)
	out = strings.Replace(out, t.kind.Placeholder(), symbol, 1)
	return strings.TrimSpace(out)
}

// DocumentForm renders the phrasing as document markup: the statement
// placeholder becomes the supplied, already-rendered body markup, and the
// symbol is typeset through conv. Multi-character symbols are wrapped to
// render upright before conversion.
func (t *Type) DocumentForm(conv lurchtypes.Converter, symbol, bodyMarkup string) (string, error) {
	rendered, err := conv.Convert(typesetSymbol(symbol), lurchtypes.FormatLatex, lurchtypes.FormatHTML)
	if err != nil {
		return "", fmt.Errorf("typeset symbol %q: %w", symbol, err)
	}
	out := strings.Replace(t.template, lurchtypes.StatementPlaceholder, bodyMarkup, 1)
	out = strings.Replace(out, t.kind.Placeholder(), rendered, 1)
	return strings.TrimSpace(out), nil
}

// TypesetForm renders the phrasing as typesetting source: the statement
// placeholder becomes the supplied body source, the symbol stays raw unless
// it is multi-character, in which case it is wrapped to render upright.
func (t *Type) TypesetForm(symbol, bodySource string) string {
	out := strings.Replace(t.template, lurchtypes.StatementPlaceholder, bodySource, 1)
	out = strings.Replace(out, t.kind.Placeholder(), typesetSymbol(symbol), 1)
	return strings.TrimSpace(out)
}

// typesetSymbol wraps multi-character symbols so they typeset in upright
// roman style rather than as a product of one-letter variables.
func typesetSymbol(symbol string) string {
	if utf8.RuneCountInString(symbol) > 1 {
		return `\mathrm{` + symbol + `}`
	}
	return symbol
}

var bareWordPattern = regexp.MustCompile(`^\w+$`)

// StructuredForm renders the canonical phrase the structured-document reader
// parses into a declaration node. It ignores the template text: the phrase
// depends only on kind and body position. Symbols that are not bare words
// are quoted as string literals.
func (t *Type) StructuredForm(symbol, body string) string {
	sym := symbol
	if !bareWordPattern.MatchString(sym) {
		sym = strconv.Quote(sym)
	}
	switch {
	case t.kind == lurchtypes.KindVariable && t.bodyPosition == lurchtypes.BodyNone:
		return "Let " + sym
	case t.kind == lurchtypes.KindVariable:
		return strings.TrimSpace("Let " + sym + " be such that " + body)
	case t.bodyPosition == lurchtypes.BodyNone:
		return "Declare " + sym
	default:
		// The body reads before the phrase in the document, but the
		// structured form always places it first, verbatim.
		return strings.TrimSpace(body + " for some " + sym)
	}
}

// ToDeclarationNode resolves the phrasing into a structured-document
// declaration node for the given symbol. A body must be supplied exactly
// when the body position demands one, and must be an expression-kind node;
// it becomes the declaration's operand. Declarations that carry a body are
// tagged existential, all others as given. The tag depends only on whether a
// body is attached, not on the declared kind.
func (t *Type) ToDeclarationNode(symbol string, body *document.Node) (*document.Node, error) {
	decl := document.NewDeclaration(document.NewSymbol(symbol))

	existential := false
	if body != nil {
		if t.bodyPosition == lurchtypes.BodyNone {
			return nil, fmt.Errorf("%w: %q", ErrBodyNotSupported, t.template)
		}
		if !body.IsExpression() {
			return nil, fmt.Errorf("%w: got a %s node", ErrBodyNotAnExpression, body.Kind)
		}
		decl.AppendChild(body)
		existential = true
	} else if t.bodyPosition != lurchtypes.BodyNone {
		return nil, fmt.Errorf("%w: body position is %s", ErrBodyRequired, t.bodyPosition)
	}

	if existential {
		decl.MakeIntoA(document.RoleForSome)
	} else {
		decl.MakeIntoA(document.RoleGiven)
	}
	return decl, nil
}

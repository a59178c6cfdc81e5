// Package declaration implements the declaration type engine: the phrasing
// conventions, like "Let x be arbitrary" or "For some c, P(c)", by which a
// document introduces a new symbol. A declaration type pairs a kind (variable
// or constant) and a body position (none, before, after) with a template
// string, and supports rendering a resolved declaration into display text,
// document markup, typesetting source, and a structured-document node, plus
// matching partially-typed user text against the template for autocomplete.
//
// Types are immutable value objects. Construction validates both the enums
// and the template's placeholder structure, so every operation afterwards can
// trust the template it holds.
package declaration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// TemplatesSettingKey is the setting whose value holds the user's configured
// declaration templates, one per line.
const TemplatesSettingKey = "declaration type templates"

// Construction and resolution faults. All are surfaced wrapped with context
// and are testable with errors.Is.
var (
	// ErrInvalidKind indicates a declaration kind outside variable/constant.
	ErrInvalidKind = errors.New("invalid declaration kind")
	// ErrInvalidBodyPosition indicates a body position outside none/before/after.
	ErrInvalidBodyPosition = errors.New("invalid body position")
	// ErrNoDefaultTemplate indicates a (kind, body position) pair with no
	// default phrasing. Unreachable once the enum checks pass, but guarded.
	ErrNoDefaultTemplate = errors.New("no default template")
	// ErrInvalidTemplate indicates a template whose placeholder structure
	// does not fit its declared kind and body position.
	ErrInvalidTemplate = errors.New("invalid template")
	// ErrBodyNotSupported indicates a body supplied to a type whose body
	// position is none.
	ErrBodyNotSupported = errors.New("declaration type does not support a body")
	// ErrBodyRequired indicates a missing body for a type whose body
	// position is before or after.
	ErrBodyRequired = errors.New("declaration type requires a body")
	// ErrBodyNotAnExpression indicates a body node that is not
	// expression-kind.
	ErrBodyNotAnExpression = errors.New("body is not an expression")
)

// defaultTemplates holds the six fixed phrasings, one per (kind, body
// position) pair.
var defaultTemplates = map[lurchtypes.DeclarationKind]map[lurchtypes.BodyPosition]string{
	lurchtypes.KindVariable: {
		lurchtypes.BodyNone:   "Let [variable] be arbitrary",
		lurchtypes.BodyBefore: "[statement], where [variable] is arbitrary",
		lurchtypes.BodyAfter:  "Let [variable] be such that [statement]",
	},
	lurchtypes.KindConstant: {
		lurchtypes.BodyNone:   "Reserve a new symbol [constant]",
		lurchtypes.BodyBefore: "[statement], for some [constant]",
		lurchtypes.BodyAfter:  "For some [constant], [statement]",
	},
}

// allPairs enumerates every (kind, body position) pair in catalog order.
var allPairs = []struct {
	kind lurchtypes.DeclarationKind
	pos  lurchtypes.BodyPosition
}{
	{lurchtypes.KindVariable, lurchtypes.BodyNone},
	{lurchtypes.KindVariable, lurchtypes.BodyBefore},
	{lurchtypes.KindVariable, lurchtypes.BodyAfter},
	{lurchtypes.KindConstant, lurchtypes.BodyNone},
	{lurchtypes.KindConstant, lurchtypes.BodyBefore},
	{lurchtypes.KindConstant, lurchtypes.BodyAfter},
}

// DefaultTemplate returns the fixed default phrasing for the given pair, or
// false for unrecognized pairs.
func DefaultTemplate(kind lurchtypes.DeclarationKind, pos lurchtypes.BodyPosition) (string, bool) {
	template, ok := defaultTemplates[kind][pos]
	return template, ok
}

// Type is one declaration phrasing convention. Instances are immutable; all
// fields are fixed at construction after validation.
type Type struct {
	kind         lurchtypes.DeclarationKind
	bodyPosition lurchtypes.BodyPosition
	template     string

	// Matching splits the template once at construction.
	matchPrefix string
	matchSuffix string
}

// Kind returns what the declaration introduces, a variable or a constant.
func (t *Type) Kind() lurchtypes.DeclarationKind { return t.kind }

// BodyPosition returns where the body statement sits relative to the phrase.
func (t *Type) BodyPosition() lurchtypes.BodyPosition { return t.bodyPosition }

// Template returns the phrasing template with its placeholders intact.
func (t *Type) Template() string { return t.template }

// String returns the template text.
func (t *Type) String() string { return t.template }

// New constructs a declaration type with the default phrasing for the given
// pair.
func New(kind lurchtypes.DeclarationKind, pos lurchtypes.BodyPosition) (*Type, error) {
	if err := checkEnums(kind, pos); err != nil {
		return nil, err
	}
	template, ok := DefaultTemplate(kind, pos)
	if !ok {
		return nil, fmt.Errorf("%w for %s/%s", ErrNoDefaultTemplate, kind, pos)
	}
	return newType(kind, pos, template), nil
}

// NewWithTemplate constructs a declaration type with a caller-supplied
// template, validating that the template's placeholders match the given kind
// and body position.
func NewWithTemplate(kind lurchtypes.DeclarationKind, pos lurchtypes.BodyPosition, template string) (*Type, error) {
	if err := checkEnums(kind, pos); err != nil {
		return nil, err
	}
	template = strings.TrimSpace(template)
	if err := validateTemplate(kind, pos, template); err != nil {
		return nil, err
	}
	return newType(kind, pos, template), nil
}

// FromTemplate constructs a declaration type from a raw template string,
// inferring the kind from which symbol placeholder appears and the body
// position from where the statement placeholder sits.
func FromTemplate(template string) (*Type, error) {
	template = strings.TrimSpace(template)

	kind := lurchtypes.KindConstant
	if strings.Contains(template, lurchtypes.KindVariable.Placeholder()) {
		kind = lurchtypes.KindVariable
	}

	pos := lurchtypes.BodyNone
	switch {
	case strings.HasPrefix(template, lurchtypes.StatementPlaceholder):
		pos = lurchtypes.BodyBefore
	case strings.HasSuffix(template, lurchtypes.StatementPlaceholder):
		pos = lurchtypes.BodyAfter
	}

	return NewWithTemplate(kind, pos, template)
}

// newType builds the immutable value, precomputing the matching split.
func newType(kind lurchtypes.DeclarationKind, pos lurchtypes.BodyPosition, template string) *Type {
	t := &Type{kind: kind, bodyPosition: pos, template: template}
	t.matchPrefix, t.matchSuffix = matchParts(kind, template)
	return t
}

func checkEnums(kind lurchtypes.DeclarationKind, pos lurchtypes.BodyPosition) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	if !pos.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidBodyPosition, pos)
	}
	return nil
}

// validateTemplate checks the template's placeholder structure against the
// declared kind and body position: exactly one symbol placeholder of the
// right kind, no placeholder of the other kind, and a statement placeholder
// present exactly when the body position demands one, at the very start for
// before, at the very end for after, never butted directly against the
// symbol placeholder.
func validateTemplate(kind lurchtypes.DeclarationKind, pos lurchtypes.BodyPosition, template string) error {
	symbol := kind.Placeholder()
	other := otherKind(kind).Placeholder()

	if n := strings.Count(template, other); n > 0 {
		return fmt.Errorf("%w: %q contains %s but kind is %s", ErrInvalidTemplate, template, other, kind)
	}
	if n := strings.Count(template, symbol); n != 1 {
		return fmt.Errorf("%w: %q must contain %s exactly once, found %d", ErrInvalidTemplate, template, symbol, n)
	}

	statements := strings.Count(template, lurchtypes.StatementPlaceholder)
	switch pos {
	case lurchtypes.BodyNone:
		if statements != 0 {
			return fmt.Errorf("%w: %q has a statement placeholder but body position is none", ErrInvalidTemplate, template)
		}
	case lurchtypes.BodyBefore:
		if statements != 1 || !strings.HasPrefix(template, lurchtypes.StatementPlaceholder) {
			return fmt.Errorf("%w: %q must start with a single statement placeholder for body position before", ErrInvalidTemplate, template)
		}
	case lurchtypes.BodyAfter:
		if statements != 1 || !strings.HasSuffix(template, lurchtypes.StatementPlaceholder) {
			return fmt.Errorf("%w: %q must end with a single statement placeholder for body position after", ErrInvalidTemplate, template)
		}
	}

	if strings.Contains(template, lurchtypes.StatementPlaceholder+symbol) ||
		strings.Contains(template, symbol+lurchtypes.StatementPlaceholder) {
		return fmt.Errorf("%w: %q has no text between the statement and symbol placeholders", ErrInvalidTemplate, template)
	}

	return nil
}

func otherKind(kind lurchtypes.DeclarationKind) lurchtypes.DeclarationKind {
	if kind == lurchtypes.KindVariable {
		return lurchtypes.KindConstant
	}
	return lurchtypes.KindVariable
}

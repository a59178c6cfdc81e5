// Package lurchtypes defines declaration phrasing types for the Lurch toolkit.
// This file contains the enums that classify a declaration template: the kind
// of symbol it introduces and where its optional body statement sits relative
// to the phrase.
package lurchtypes

import (
	"fmt"
	"strings"
)

// DeclarationKind identifies what a declaration introduces into a document.
type DeclarationKind int

const (
	// KindVariable introduces an arbitrary variable (e.g. "Let x be arbitrary").
	KindVariable DeclarationKind = iota
	// KindConstant introduces a named constant (e.g. "Reserve a new symbol c").
	KindConstant
)

// StatementPlaceholder marks where a declaration template's body statement is
// substituted. A template contains at most one, at its very start or very end.
const StatementPlaceholder = "[statement]"

// String returns the lowercase name of the kind ("variable" or "constant").
func (k DeclarationKind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	default:
		return fmt.Sprintf("DeclarationKind(%d)", int(k))
	}
}

// Placeholder returns the template placeholder for this kind, "[variable]" or
// "[constant]". Every declaration template contains exactly one, marking where
// the declared symbol is substituted.
func (k DeclarationKind) Placeholder() string {
	return "[" + k.String() + "]"
}

// Valid reports whether k is one of the defined declaration kinds.
func (k DeclarationKind) Valid() bool {
	return k == KindVariable || k == KindConstant
}

// ParseDeclarationKind converts a string such as "variable" or "constant" into
// the corresponding DeclarationKind. Matching is case-insensitive.
func ParseDeclarationKind(s string) (DeclarationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "variable":
		return KindVariable, nil
	case "constant":
		return KindConstant, nil
	default:
		return 0, fmt.Errorf("unknown declaration kind %q (expected variable or constant)", s)
	}
}

// BodyPosition identifies where a declaration's body statement appears
// relative to the declaration phrase, if it has one at all.
type BodyPosition int

const (
	// BodyNone means the declaration has no body statement.
	BodyNone BodyPosition = iota
	// BodyBefore means the body statement precedes the phrase
	// (e.g. "[statement], for some [constant]").
	BodyBefore
	// BodyAfter means the body statement follows the phrase
	// (e.g. "For some [constant], [statement]").
	BodyAfter
)

// String returns the lowercase name of the position ("none", "before", "after").
func (p BodyPosition) String() string {
	switch p {
	case BodyNone:
		return "none"
	case BodyBefore:
		return "before"
	case BodyAfter:
		return "after"
	default:
		return fmt.Sprintf("BodyPosition(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined body positions.
func (p BodyPosition) Valid() bool {
	return p == BodyNone || p == BodyBefore || p == BodyAfter
}

// ParseBodyPosition converts a string such as "none", "before" or "after" into
// the corresponding BodyPosition. Matching is case-insensitive.
func ParseBodyPosition(s string) (BodyPosition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return BodyNone, nil
	case "before":
		return BodyBefore, nil
	case "after":
		return BodyAfter, nil
	default:
		return 0, fmt.Errorf("unknown body position %q (expected none, before or after)", s)
	}
}

// Package document provides the minimal structured-document model the
// declaration engine resolves into: typed nodes carrying role attributes and
// children, plus a Document wrapper with categorized JSON metadata and format
// versioning.
package document

import (
	"regexp"
	"strconv"
	"strings"
)

// NodeKind classifies a node in the structured document tree. Kinds are
// strings so saved documents stay readable and stable across releases.
type NodeKind string

const (
	// KindSymbol is an atomic symbol such as a variable or constant name.
	KindSymbol NodeKind = "symbol"
	// KindApplication applies an operator to operands.
	KindApplication NodeKind = "application"
	// KindDeclaration introduces a symbol, optionally constrained by a body.
	KindDeclaration NodeKind = "declaration"
	// KindEnvironment groups child nodes, like a block in a proof.
	KindEnvironment NodeKind = "environment"
)

// Roles a node can be tagged with via MakeIntoA.
const (
	// RoleGiven marks a node as an assumption rather than a claim.
	RoleGiven = "given"
	// RoleForSome marks a declaration as existential, introduced together
	// with a constraining body.
	RoleForSome = "ForSome"
	// RoleLet marks a declaration as universal, introducing an arbitrary
	// symbol.
	RoleLet = "Let"
	// RoleExpository marks an environment as expository content that the
	// logical reading of the document skips.
	RoleExpository = "expository"
)

// roleAttrPrefix namespaces role flags within the attribute map.
const roleAttrPrefix = "type:"

// Node is one node in a structured document tree.
type Node struct {
	Kind       NodeKind       `json:"kind"`
	Text       string         `json:"text,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []*Node        `json:"children,omitempty"`
}

// NewSymbol returns a symbol node with the given name.
func NewSymbol(name string) *Node {
	return &Node{Kind: KindSymbol, Text: name}
}

// NewApplication returns an application of op to the given operands.
func NewApplication(op *Node, operands ...*Node) *Node {
	n := &Node{Kind: KindApplication}
	n.AppendChild(op)
	for _, operand := range operands {
		n.AppendChild(operand)
	}
	return n
}

// NewDeclaration returns a declaration node introducing the given symbol.
// A constraining body, if any, is appended as a second child afterwards.
func NewDeclaration(symbol *Node) *Node {
	n := &Node{Kind: KindDeclaration}
	n.AppendChild(symbol)
	return n
}

// NewEnvironment returns an environment node with the given children.
func NewEnvironment(children ...*Node) *Node {
	n := &Node{Kind: KindEnvironment}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

// IsExpression reports whether the node is expression-kind, i.e. something
// that can serve as the body of a declaration.
func (n *Node) IsExpression() bool {
	return n.Kind == KindSymbol || n.Kind == KindApplication
}

// MakeIntoA tags the node with the given role and returns the node, so tags
// can be chained onto constructor calls.
func (n *Node) MakeIntoA(role string) *Node {
	if n.Attributes == nil {
		n.Attributes = make(map[string]any)
	}
	n.Attributes[roleAttrPrefix+role] = true
	return n
}

// Unmake removes the given role tag from the node and returns the node.
func (n *Node) Unmake(role string) *Node {
	delete(n.Attributes, roleAttrPrefix+role)
	if len(n.Attributes) == 0 {
		n.Attributes = nil
	}
	return n
}

// IsA reports whether the node carries the given role tag.
func (n *Node) IsA(role string) bool {
	flag, ok := n.Attributes[roleAttrPrefix+role]
	if !ok {
		return false
	}
	b, ok := flag.(bool)
	return ok && b
}

// SetAttribute stores an arbitrary attribute value on the node.
func (n *Node) SetAttribute(key string, value any) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]any)
	}
	n.Attributes[key] = value
}

// Attribute returns the attribute stored under key, or false when absent.
func (n *Node) Attribute(key string) (any, bool) {
	value, ok := n.Attributes[key]
	return value, ok
}

// AppendChild adds child as the node's last child. Nil children are ignored.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// ReplaceLastChild replaces the node's last child with child. With no
// children it behaves like AppendChild.
func (n *Node) ReplaceLastChild(child *Node) {
	if child == nil {
		return
	}
	if len(n.Children) == 0 {
		n.Children = []*Node{child}
		return
	}
	n.Children[len(n.Children)-1] = child
}

// LastChild returns the node's last child, or nil when it has none.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

var bareSymbolPattern = regexp.MustCompile(`^\w+$`)

// String renders the node in a compact bracket notation for logs and tests:
// symbols print their name, applications as (op operands...), declarations as
// [symbol] or [symbol , body], environments as { children... }. Nodes tagged
// given are prefixed with a colon.
func (n *Node) String() string {
	var sb strings.Builder
	if n.IsA(RoleGiven) {
		sb.WriteString(":")
	}
	switch n.Kind {
	case KindSymbol:
		sb.WriteString(formatSymbolText(n.Text))
	case KindApplication:
		sb.WriteString("(")
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(child.String())
		}
		sb.WriteString(")")
	case KindDeclaration:
		sb.WriteString("[")
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(" , ")
			}
			sb.WriteString(child.String())
		}
		sb.WriteString("]")
	case KindEnvironment:
		sb.WriteString("{")
		for _, child := range n.Children {
			sb.WriteString(" ")
			sb.WriteString(child.String())
		}
		sb.WriteString(" }")
	default:
		sb.WriteString(string(n.Kind))
	}
	return sb.String()
}

// formatSymbolText quotes symbol names containing anything beyond word
// characters, so the compact notation stays unambiguous.
func formatSymbolText(text string) string {
	if bareSymbolPattern.MatchString(text) {
		return text
	}
	return strconv.Quote(text)
}

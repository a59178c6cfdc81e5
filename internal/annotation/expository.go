// Package annotation implements expository math: lightweight LaTeX fragments
// with optional notes that are attached to a structured document for the
// reader's benefit but skipped by its logical reading.
package annotation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lurchmath/lurchmath-sub002/internal/document"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// Validation faults for expository math content.
var (
	// ErrEmptyContent indicates an annotation with no LaTeX source.
	ErrEmptyContent = errors.New("expository math has no content")
	// ErrUnbalanced indicates LaTeX source with unbalanced braces or math
	// delimiters.
	ErrUnbalanced = errors.New("unbalanced latex delimiters")
)

// Attribute keys an expository node carries in the document tree.
const (
	attrID    = "expository id"
	attrLatex = "expository latex"
	attrNote  = "expository note"
)

// ExpositoryMath is one annotation: a fragment of LaTeX source plus an
// optional plain-text note.
type ExpositoryMath struct {
	ID    string `json:"id"`
	Latex string `json:"latex"`
	Note  string `json:"note,omitempty"`
}

// New validates the LaTeX source and returns an annotation with a fresh
// random ID.
func New(latex, note string) (*ExpositoryMath, error) {
	return NewWithID(uuid.New().String(), latex, note)
}

// NewWithID is New with a caller-chosen ID, for deterministic test output.
func NewWithID(id, latex, note string) (*ExpositoryMath, error) {
	if err := Validate(latex); err != nil {
		return nil, err
	}
	return &ExpositoryMath{ID: id, Latex: strings.TrimSpace(latex), Note: strings.TrimSpace(note)}, nil
}

// Validate checks that latex is usable as expository math: non-blank, with
// balanced braces and an even number of $ delimiters. It does not try to
// parse LaTeX beyond that.
func Validate(latex string) error {
	if strings.TrimSpace(latex) == "" {
		return ErrEmptyContent
	}
	depth := 0
	dollars := 0
	escaped := false
	for _, r := range latex {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: closing brace with no opener", ErrUnbalanced)
			}
		case '$':
			dollars++
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed brace(s)", ErrUnbalanced, depth)
	}
	if dollars%2 != 0 {
		return fmt.Errorf("%w: odd number of $ delimiters", ErrUnbalanced)
	}
	return nil
}

// DisplayText renders the annotation as plain text through the given
// converter, with the note appended in parentheses when present.
func (e *ExpositoryMath) DisplayText(conv lurchtypes.Converter) (string, error) {
	rendered, err := conv.Convert(e.Latex, lurchtypes.FormatLatex, lurchtypes.FormatText)
	if err != nil {
		return "", fmt.Errorf("render expository math: %w", err)
	}
	if e.Note == "" {
		return rendered, nil
	}
	return fmt.Sprintf("%s (%s)", rendered, e.Note), nil
}

// Markdown renders the annotation as a markdown fragment for terminal
// preview. The LaTeX stays in $...$ source form; rendering mathematics is a
// job for the editor, not this toolkit.
func (e *ExpositoryMath) Markdown() string {
	var sb strings.Builder
	sb.WriteString("> **Expository math.** $")
	sb.WriteString(e.Latex)
	sb.WriteString("$\n")
	if e.Note != "" {
		sb.WriteString(">\n> ")
		sb.WriteString(e.Note)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Attach embeds the annotation at the end of the document's root environment
// and returns the node that carries it. The node is an environment tagged
// with the expository role, so logical readings of the tree can skip it.
func (e *ExpositoryMath) Attach(doc *document.Document) *document.Node {
	node := document.NewEnvironment().MakeIntoA(document.RoleExpository)
	node.SetAttribute(attrID, e.ID)
	node.SetAttribute(attrLatex, e.Latex)
	if e.Note != "" {
		node.SetAttribute(attrNote, e.Note)
	}
	doc.Root.AppendChild(node)
	return node
}

// FindAll returns every annotation embedded anywhere in the document, in
// document order.
func FindAll(doc *document.Document) []*ExpositoryMath {
	var found []*ExpositoryMath
	walk(doc.Root, func(n *document.Node) {
		if e, ok := fromNode(n); ok {
			found = append(found, e)
		}
	})
	return found
}

// Remove deletes the annotation with the given ID from the document,
// wherever it is embedded. It reports whether anything was removed.
func Remove(doc *document.Document, id string) bool {
	return removeFrom(doc.Root, id)
}

func removeFrom(n *document.Node, id string) bool {
	for i, child := range n.Children {
		if e, ok := fromNode(child); ok && e.ID == id {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
		if removeFrom(child, id) {
			return true
		}
	}
	return false
}

// walk visits n and every descendant, depth first.
func walk(n *document.Node, visit func(*document.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		walk(child, visit)
	}
}

// fromNode reconstructs an annotation from an expository-tagged node.
func fromNode(n *document.Node) (*ExpositoryMath, bool) {
	if !n.IsA(document.RoleExpository) {
		return nil, false
	}
	latexValue, ok := n.Attribute(attrLatex)
	if !ok {
		return nil, false
	}
	latex, ok := latexValue.(string)
	if !ok {
		return nil, false
	}
	e := &ExpositoryMath{Latex: latex}
	if idValue, ok := n.Attribute(attrID); ok {
		if id, ok := idValue.(string); ok {
			e.ID = id
		}
	}
	if noteValue, ok := n.Attribute(attrNote); ok {
		if note, ok := noteValue.(string); ok {
			e.Note = note
		}
	}
	return e, true
}

package services

import (
	"fmt"

	"github.com/lurchmath/lurchmath-sub002/internal/declaration"
	"github.com/lurchmath/lurchmath-sub002/internal/document"
	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// DeclarationService is the engine facade: it builds declaration types from
// the user's configured templates, matches partially-typed phrases, renders
// resolved declarations, and produces document nodes. Templates are read
// through the settings service on every call, so edits take effect
// immediately.
type DeclarationService struct {
	initialized bool
}

// MatchResult pairs a declaration type with the symbol it captured from a
// piece of input text.
type MatchResult struct {
	Type   *declaration.Type
	Symbol string
}

// RenderedForms holds a declaration rendered into every output
// representation.
type RenderedForms struct {
	Display    string
	Document   string
	Typeset    string
	Structured string
}

// NewDeclarationService creates a new DeclarationService instance.
func NewDeclarationService() *DeclarationService {
	return &DeclarationService{}
}

// Name returns the service name "declaration" for registration.
func (d *DeclarationService) Name() string {
	return "declaration"
}

// Initialize sets up the DeclarationService for operation.
func (d *DeclarationService) Initialize() error {
	d.initialized = true
	return nil
}

// Types returns the configured declaration types, optionally completed with
// a default instance for every uncovered (kind, body position) pair.
func (d *DeclarationService) Types(includeDefaults bool) ([]*declaration.Type, error) {
	provider, err := d.provider()
	if err != nil {
		return nil, err
	}
	return declaration.FromSettings(provider, includeDefaults), nil
}

// ConfiguredTypes returns the declaration types the user's settings call
// for, honoring the "complete missing phrasings" setting.
func (d *DeclarationService) ConfiguredTypes() ([]*declaration.Type, error) {
	settingsService, err := d.settingsService()
	if err != nil {
		return nil, err
	}
	return declaration.FromSettings(settingsService, settingsService.GetBool("complete missing phrasings")), nil
}

// MatchAll runs the matcher for every configured type against text and
// returns the types that recognize it, with their captured symbols.
func (d *DeclarationService) MatchAll(text string) ([]MatchResult, error) {
	types, err := d.ConfiguredTypes()
	if err != nil {
		return nil, err
	}

	var results []MatchResult
	for _, typ := range types {
		if symbol, ok := typ.Match(text); ok {
			results = append(results, MatchResult{Type: typ, Symbol: symbol})
		}
	}
	return results, nil
}

// Render produces every output representation of a declaration. The body is
// given as typesetting source; the document form converts it to markup
// through the notation service.
func (d *DeclarationService) Render(typ *declaration.Type, symbol, body string) (*RenderedForms, error) {
	if !d.initialized {
		return nil, fmt.Errorf("declaration service not initialized")
	}

	notationService, err := GetGlobalNotationService()
	if err != nil {
		return nil, err
	}
	conv, err := notationService.Converter()
	if err != nil {
		return nil, err
	}

	bodyMarkup := ""
	if body != "" {
		bodyMarkup, err = conv.Convert(body, lurchtypes.FormatLatex, lurchtypes.FormatHTML)
		if err != nil {
			return nil, fmt.Errorf("failed to convert body markup: %w", err)
		}
	}

	documentForm, err := typ.DocumentForm(conv, symbol, bodyMarkup)
	if err != nil {
		return nil, err
	}

	return &RenderedForms{
		Display:    typ.DisplayForm(symbol),
		Document:   documentForm,
		Typeset:    typ.TypesetForm(symbol, body),
		Structured: typ.StructuredForm(symbol, body),
	}, nil
}

// Resolve builds the document node for a declaration of symbol, with an
// optional body expression.
func (d *DeclarationService) Resolve(typ *declaration.Type, symbol string, body *document.Node) (*document.Node, error) {
	if !d.initialized {
		return nil, fmt.Errorf("declaration service not initialized")
	}
	node, err := typ.ToDeclarationNode(symbol, body)
	if err != nil {
		return nil, err
	}
	logger.ServiceOperation("declaration", "resolved", "symbol", symbol, "node", node.String())
	return node, nil
}

// provider returns the settings provider declaration types are read from.
func (d *DeclarationService) provider() (lurchtypes.SettingsProvider, error) {
	return d.settingsService()
}

func (d *DeclarationService) settingsService() (*SettingsService, error) {
	if !d.initialized {
		return nil, fmt.Errorf("declaration service not initialized")
	}
	return GetGlobalSettingsService()
}

// GetGlobalDeclarationService returns the declaration service from the
// global registry.
func GetGlobalDeclarationService() (*DeclarationService, error) {
	service, err := GetGlobalRegistry().GetService("declaration")
	if err != nil {
		return nil, err
	}

	declarationService, ok := service.(*DeclarationService)
	if !ok {
		return nil, fmt.Errorf("service 'declaration' is not a DeclarationService")
	}

	return declarationService, nil
}

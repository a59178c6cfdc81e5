package services

import (
	"fmt"

	"github.com/lurchmath/lurchmath-sub002/internal/notation"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// NotationService owns the notation converter used to move mathematical
// text between typesetting source and the other output formats.
type NotationService struct {
	initialized bool
	converter   *notation.PlainConverter
}

// NewNotationService creates a new NotationService instance.
func NewNotationService() *NotationService {
	return &NotationService{}
}

// Name returns the service name "notation" for registration.
func (n *NotationService) Name() string {
	return "notation"
}

// Initialize sets up the NotationService with its converter.
func (n *NotationService) Initialize() error {
	n.converter = notation.NewPlainConverter()
	n.initialized = true
	return nil
}

// Converter returns the converter for callers that pass it along, such as
// declaration rendering.
func (n *NotationService) Converter() (lurchtypes.Converter, error) {
	if !n.initialized {
		return nil, fmt.Errorf("notation service not initialized")
	}
	return n.converter, nil
}

// Convert translates text between notation formats.
func (n *NotationService) Convert(text string, from, to lurchtypes.Format) (string, error) {
	if !n.initialized {
		return "", fmt.Errorf("notation service not initialized")
	}
	return n.converter.Convert(text, from, to)
}

// GetGlobalNotationService returns the notation service from the global
// registry.
func GetGlobalNotationService() (*NotationService, error) {
	service, err := GetGlobalRegistry().GetService("notation")
	if err != nil {
		return nil, err
	}

	notationService, ok := service.(*NotationService)
	if !ok {
		return nil, fmt.Errorf("service 'notation' is not a NotationService")
	}

	return notationService, nil
}

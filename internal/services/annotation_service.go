package services

import (
	"fmt"

	"github.com/lurchmath/lurchmath-sub002/internal/annotation"
	"github.com/lurchmath/lurchmath-sub002/internal/document"
	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/testutils"
)

// AnnotationService manages expository math annotations: creating them,
// attaching them to documents, and rendering terminal previews.
type AnnotationService struct {
	initialized bool
	testMode    bool
}

// NewAnnotationService creates a new AnnotationService instance. In test
// mode annotation IDs are deterministic.
func NewAnnotationService(testMode bool) *AnnotationService {
	return &AnnotationService{testMode: testMode}
}

// Name returns the service name "annotation" for registration.
func (a *AnnotationService) Name() string {
	return "annotation"
}

// Initialize sets up the AnnotationService for operation.
func (a *AnnotationService) Initialize() error {
	a.initialized = true
	return nil
}

// Create validates latex and returns a new annotation with a generated ID.
func (a *AnnotationService) Create(latex, note string) (*annotation.ExpositoryMath, error) {
	if !a.initialized {
		return nil, fmt.Errorf("annotation service not initialized")
	}
	expository, err := annotation.NewWithID(testutils.GenerateUUID(a.testMode), latex, note)
	if err != nil {
		return nil, err
	}
	logger.ServiceOperation("annotation", "created", "id", expository.ID)
	return expository, nil
}

// Validate checks latex without creating an annotation.
func (a *AnnotationService) Validate(latex string) error {
	if !a.initialized {
		return fmt.Errorf("annotation service not initialized")
	}
	return annotation.Validate(latex)
}

// Attach embeds the annotation in doc and returns the node carrying it.
func (a *AnnotationService) Attach(doc *document.Document, expository *annotation.ExpositoryMath) (*document.Node, error) {
	if !a.initialized {
		return nil, fmt.Errorf("annotation service not initialized")
	}
	return expository.Attach(doc), nil
}

// FindAll returns every annotation stored in doc, in document order.
func (a *AnnotationService) FindAll(doc *document.Document) ([]*annotation.ExpositoryMath, error) {
	if !a.initialized {
		return nil, fmt.Errorf("annotation service not initialized")
	}
	return annotation.FindAll(doc), nil
}

// Remove deletes the annotation with the given ID from doc. It reports
// whether an annotation was found.
func (a *AnnotationService) Remove(doc *document.Document, id string) (bool, error) {
	if !a.initialized {
		return false, fmt.Errorf("annotation service not initialized")
	}
	removed := annotation.Remove(doc, id)
	if removed {
		logger.ServiceOperation("annotation", "removed", "id", id)
	}
	return removed, nil
}

// Preview renders the annotation as plain terminal text. The note is
// included only when the "expository notes in previews" setting is on.
func (a *AnnotationService) Preview(expository *annotation.ExpositoryMath) (string, error) {
	if !a.initialized {
		return "", fmt.Errorf("annotation service not initialized")
	}

	notationService, err := GetGlobalNotationService()
	if err != nil {
		return "", err
	}
	conv, err := notationService.Converter()
	if err != nil {
		return "", err
	}

	return a.forPreview(expository).DisplayText(conv)
}

// MarkdownPreview renders the annotation's markdown form through the
// markdown service for rich terminal output.
func (a *AnnotationService) MarkdownPreview(expository *annotation.ExpositoryMath) (string, error) {
	if !a.initialized {
		return "", fmt.Errorf("annotation service not initialized")
	}

	markdownService, err := GetGlobalMarkdownService()
	if err != nil {
		return "", err
	}
	return markdownService.Render(a.forPreview(expository).Markdown())
}

// forPreview applies the notes-in-previews setting, dropping the note when
// previews are configured to omit it.
func (a *AnnotationService) forPreview(expository *annotation.ExpositoryMath) *annotation.ExpositoryMath {
	settingsService, err := GetGlobalSettingsService()
	if err != nil || settingsService.GetBool("expository notes in previews") {
		return expository
	}
	stripped := *expository
	stripped.Note = ""
	return &stripped
}

// GetGlobalAnnotationService returns the annotation service from the global
// registry.
func GetGlobalAnnotationService() (*AnnotationService, error) {
	service, err := GetGlobalRegistry().GetService("annotation")
	if err != nil {
		return nil, err
	}

	annotationService, ok := service.(*AnnotationService)
	if !ok {
		return nil, fmt.Errorf("service 'annotation' is not an AnnotationService")
	}

	return annotationService, nil
}

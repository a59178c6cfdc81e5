package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
)

// defaultWrapWidth is used when the settings service is unavailable or the
// configured width is unusable.
const defaultWrapWidth = 80

// glamourStyles maps color scheme names to glamour style names. Schemes
// without an entry fall back to terminal auto-detection.
var glamourStyles = map[string]string{
	"dark":    "dark",
	"plain":   "notty",
	"default": "auto",
}

// MarkdownService renders markdown to ANSI terminal output using Glamour.
// Wrap width follows the "preview width in columns" setting and the style
// follows the "color scheme" setting, both read at render time so changes
// take effect immediately.
type MarkdownService struct {
	initialized bool
	renderer    *glamour.TermRenderer
	wrapWidth   int
}

// NewMarkdownService creates a markdown service. The glamour renderer is
// built lazily on first render, once settings are available.
func NewMarkdownService() *MarkdownService {
	return &MarkdownService{}
}

// Name returns the service name "markdown" for registration.
func (m *MarkdownService) Name() string {
	return "markdown"
}

// Initialize marks the service ready.
func (m *MarkdownService) Initialize() error {
	m.initialized = true
	return nil
}

// checkInput rejects renders before Initialize and renders of blank content.
func (m *MarkdownService) checkInput(markdown string) error {
	if !m.initialized {
		return fmt.Errorf("markdown service not initialized")
	}
	if strings.TrimSpace(markdown) == "" {
		return fmt.Errorf("markdown content cannot be empty")
	}
	return nil
}

// Render renders markdown with the terminal's detected style.
func (m *MarkdownService) Render(markdown string) (string, error) {
	if err := m.checkInput(markdown); err != nil {
		return "", err
	}
	if err := m.ensureRenderer(); err != nil {
		return "", err
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}

// RenderWithStyle renders markdown with a named glamour style. An unknown
// style falls back to Render rather than failing the whole preview.
func (m *MarkdownService) RenderWithStyle(markdown string, style string) (string, error) {
	if err := m.checkInput(markdown); err != nil {
		return "", err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(m.currentWidth()),
	)
	if err != nil {
		logger.Debug("Glamour style unavailable, using terminal default", "style", style, "error", err)
		return m.Render(markdown)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown with style '%s': %w", style, err)
	}
	return rendered, nil
}

// RenderWithTheme renders markdown styled to match the configured color
// scheme.
func (m *MarkdownService) RenderWithTheme(markdown string) (string, error) {
	return m.RenderWithStyle(markdown, m.styleForScheme(m.currentScheme()))
}

// GetAvailableStyles lists the glamour style names RenderWithStyle accepts.
func (m *MarkdownService) GetAvailableStyles() []string {
	return []string{"auto", "dark", "light", "notty", "ascii"}
}

// ensureRenderer builds the default renderer, rebuilding it when the
// configured wrap width has changed since the last render.
func (m *MarkdownService) ensureRenderer() error {
	width := m.currentWidth()
	if m.renderer != nil && width == m.wrapWidth {
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	m.renderer = renderer
	m.wrapWidth = width
	return nil
}

// currentWidth reads the configured preview width, falling back to the
// default when settings are unavailable.
func (m *MarkdownService) currentWidth() int {
	settingsService, err := GetGlobalSettingsService()
	if err != nil {
		return defaultWrapWidth
	}
	if width := settingsService.GetInt("preview width in columns"); width > 0 {
		return width
	}
	return defaultWrapWidth
}

// currentScheme reads the configured color scheme name.
func (m *MarkdownService) currentScheme() string {
	settingsService, err := GetGlobalSettingsService()
	if err != nil {
		return "default"
	}
	if scheme := settingsService.Get("color scheme"); scheme != "" {
		return scheme
	}
	return "default"
}

// styleForScheme picks the glamour style for a color scheme name.
func (m *MarkdownService) styleForScheme(scheme string) string {
	if style, ok := glamourStyles[strings.ToLower(scheme)]; ok {
		return style
	}
	return "auto"
}

// GetGlobalMarkdownService returns the markdown service from the global
// registry.
func GetGlobalMarkdownService() (*MarkdownService, error) {
	svc, err := GetGlobalRegistry().GetService("markdown")
	if err != nil {
		return nil, err
	}
	markdown, ok := svc.(*MarkdownService)
	if !ok {
		return nil, fmt.Errorf("service 'markdown' is not a MarkdownService")
	}
	return markdown, nil
}

package services

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/lurchmath/lurchmath-sub002/internal/data/embedded"
	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// ThemeService provides theme management for terminal output styling.
// It maintains theme objects the shell and commands use for semantic
// styling of phrases, symbols, and messages.
type ThemeService struct {
	initialized bool
	themes      map[string]*Theme
}

// Theme carries the lipgloss styles for one color scheme. Fields are
// named for what they style, not how.
type Theme struct {
	Name        string
	Phrase      lipgloss.Style
	Symbol      lipgloss.Style
	Placeholder lipgloss.Style
	Key         lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Info        lipgloss.Style
	Highlight   lipgloss.Style
	List        lipgloss.Style
}

// NewThemeService creates a theme service with every embedded theme loaded.
func NewThemeService() *ThemeService {
	service := &ThemeService{themes: make(map[string]*Theme)}
	service.loadThemesFromYAML()
	return service
}

// Name returns the service name "theme" for registration.
func (t *ThemeService) Name() string {
	return "theme"
}

// Initialize marks the service ready.
func (t *ThemeService) Initialize() error {
	t.initialized = true
	return nil
}

// loadThemesFromYAML fills the theme map from the embedded YAML files. A
// theme that fails to parse degrades to an unstyled theme of the same
// name, and a plain theme is guaranteed to exist either way.
func (t *ThemeService) loadThemesFromYAML() {
	for _, themeName := range embedded.ThemeNames() {
		themeData, err := embedded.ThemeData(themeName)
		if err == nil {
			var theme *Theme
			theme, err = t.loadThemeFile(themeData)
			if err == nil {
				t.themes[themeName] = theme
				continue
			}
		}
		logger.Error("Failed to load theme", "theme", themeName, "error", err)
		t.themes[themeName] = t.createFallbackTheme(themeName)
	}

	if _, ok := t.themes["plain"]; !ok {
		t.themes["plain"] = t.createFallbackTheme("plain")
	}
}

// loadThemeFile parses one embedded theme definition.
func (t *ThemeService) loadThemeFile(data []byte) (*Theme, error) {
	var themeFile lurchtypes.ThemeFile
	if err := yaml.Unmarshal(data, &themeFile); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	return t.convertThemeConfig(&themeFile.ThemeConfig), nil
}

// convertThemeConfig turns the parsed YAML config into lipgloss styles.
func (t *ThemeService) convertThemeConfig(config *lurchtypes.ThemeConfig) *Theme {
	return &Theme{
		Name:        config.Name,
		Phrase:      t.createStyle(config.Styles.Phrase),
		Symbol:      t.createStyle(config.Styles.Symbol),
		Placeholder: t.createStyle(config.Styles.Placeholder),
		Key:         t.createStyle(config.Styles.Key),
		Success:     t.createStyle(config.Styles.Success),
		Error:       t.createStyle(config.Styles.Error),
		Warning:     t.createStyle(config.Styles.Warning),
		Info:        t.createStyle(config.Styles.Info),
		Highlight:   t.createStyle(config.Styles.Highlight),
		List:        t.createStyle(config.Styles.List),
	}
}

// createStyle builds one lipgloss style from its YAML description.
func (t *ThemeService) createStyle(config lurchtypes.StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if color := t.parseColor(config.Foreground); color != nil {
		style = style.Foreground(color)
	}
	if color := t.parseColor(config.Background); color != nil {
		style = style.Background(color)
	}
	if boolSet(config.Bold) {
		style = style.Bold(true)
	}
	if boolSet(config.Italic) {
		style = style.Italic(true)
	}
	if boolSet(config.Underline) {
		style = style.Underline(true)
	}
	return style
}

func boolSet(flag *bool) bool {
	return flag != nil && *flag
}

// parseColor accepts a plain color string or a light/dark pair and
// returns nil for anything else, including absent values.
func (t *ThemeService) parseColor(value interface{}) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, _ := v["light"].(string)
		dark, _ := v["dark"].(string)
		if light != "" && dark != "" {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
	}
	return nil
}

// createFallbackTheme builds a theme that styles nothing.
func (t *ThemeService) createFallbackTheme(name string) *Theme {
	unstyled := lipgloss.NewStyle()
	return &Theme{
		Name: name, Phrase: unstyled, Symbol: unstyled, Placeholder: unstyled,
		Key: unstyled, Success: unstyled, Error: unstyled, Warning: unstyled,
		Info: unstyled, Highlight: unstyled, List: unstyled,
	}
}

// GetAvailableThemes returns the loaded theme names in sorted order.
func (t *ThemeService) GetAvailableThemes() []string {
	if !t.initialized {
		return []string{}
	}
	return slices.Sorted(maps.Keys(t.themes))
}

// GetTheme returns the named theme when it exists.
func (t *ThemeService) GetTheme(name string) (*Theme, bool) {
	if !t.initialized {
		return nil, false
	}
	theme, ok := t.themes[name]
	return theme, ok
}

// GetThemeByName resolves a theme name case-insensitively, never failing.
// Unknown names land on the plain theme.
func (t *ThemeService) GetThemeByName(name string) *Theme {
	if !t.initialized {
		return t.GetDefaultTheme()
	}

	switch key := strings.ToLower(strings.TrimSpace(name)); key {
	case "", "plain", "dark", "default":
		if theme, ok := t.themes[key]; ok {
			return theme
		}
	default:
		logger.Debug("Invalid theme requested, using plain theme", "theme", name, "available", t.GetAvailableThemes())
	}
	return t.themes["plain"]
}

// ActiveTheme returns the theme selected by the "color scheme" setting. On
// terminals with no color support the plain theme is used regardless of the
// setting.
func (t *ThemeService) ActiveTheme() *Theme {
	if !t.initialized {
		return t.GetDefaultTheme()
	}

	if termenv.EnvColorProfile() == termenv.Ascii {
		return t.themes["plain"]
	}

	settingsService, err := GetGlobalSettingsService()
	if err != nil {
		return t.GetThemeByName("default")
	}
	return t.GetThemeByName(settingsService.Get("color scheme"))
}

// DeclarationHighlight returns the style for captured symbols in match
// output. The "declaration highlight color" setting overrides the theme's
// symbol foreground when set.
func (t *ThemeService) DeclarationHighlight() lipgloss.Style {
	theme := t.ActiveTheme()
	style := theme.Symbol

	if theme.Name == "plain" {
		return style
	}
	settingsService, err := GetGlobalSettingsService()
	if err != nil {
		return style
	}
	if color := settingsService.Get("declaration highlight color"); color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}

// GetDefaultTheme returns the plain theme, building one on the spot when
// the service has not been initialized yet.
func (t *ThemeService) GetDefaultTheme() *Theme {
	if !t.initialized {
		return t.createFallbackTheme("plain")
	}
	return t.themes["plain"]
}

// CreateList creates an empty list with this theme's enumerator styling.
func (t *Theme) CreateList() *list.List {
	return list.New().EnumeratorStyle(t.List)
}

// CreateSimpleList builds a flat list of items.
func (t *Theme) CreateSimpleList(items []string) *list.List {
	l := t.CreateList()
	for _, item := range items {
		l.Item(item)
	}
	return l
}

// CreateGroupedList builds a nested list from grouped data, with group
// names in a stable order. Empty groups are omitted.
func (t *Theme) CreateGroupedList(groups map[string][]string) *list.List {
	var items []interface{}
	for _, groupName := range slices.Sorted(maps.Keys(groups)) {
		members := groups[groupName]
		if len(members) == 0 {
			continue
		}
		group := t.CreateList()
		for _, member := range members {
			group.Item(member)
		}
		items = append(items, t.Warning.Render(groupName), group)
	}
	return list.New(items...).EnumeratorStyle(t.List)
}

// CreatePairList builds a list of key = value lines in the given key order.
func (t *Theme) CreatePairList(keys []string, values map[string]string) *list.List {
	l := t.CreateList()
	for _, key := range keys {
		l.Item(fmt.Sprintf("%s = %s", t.Key.Render(key), t.Info.Render(values[key])))
	}
	return l
}

// GetGlobalThemeService returns the theme service from the global registry.
func GetGlobalThemeService() (*ThemeService, error) {
	svc, err := GetGlobalRegistry().GetService("theme")
	if err != nil {
		return nil, err
	}
	themes, ok := svc.(*ThemeService)
	if !ok {
		return nil, fmt.Errorf("service 'theme' is not a ThemeService")
	}
	return themes, nil
}

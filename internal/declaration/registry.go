package declaration

import (
	"strings"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// Defaults returns a fresh instance of each of the six default declaration
// types, in catalog order.
func Defaults() []*Type {
	types := make([]*Type, 0, len(allPairs))
	for _, pair := range allPairs {
		t, err := New(pair.kind, pair.pos)
		if err != nil {
			// The default table covers every pair; reaching this would be a
			// programming error in the table itself.
			logger.Error("Default declaration type unavailable", "kind", pair.kind, "position", pair.pos, "error", err)
			continue
		}
		types = append(types, t)
	}
	return types
}

// DefaultTemplatesSetting returns the six default phrasings joined one per
// line, the factory value of the templates setting.
func DefaultTemplatesSetting() string {
	templates := make([]string, 0, len(allPairs))
	for _, pair := range allPairs {
		if template, ok := DefaultTemplate(pair.kind, pair.pos); ok {
			templates = append(templates, template)
		}
	}
	return strings.Join(templates, "\n")
}

// FromSettings builds the configured declaration types from the provider's
// templates setting, one template per non-blank line. Lines that fail
// template validation are skipped with a debug log rather than failing the
// whole list. With includeDefaults set, a default instance is appended for
// every (kind, body position) pair the configured lines leave uncovered.
func FromSettings(provider lurchtypes.SettingsProvider, includeDefaults bool) []*Type {
	var types []*Type

	raw := provider.Get(TemplatesSettingKey)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		t, err := FromTemplate(line)
		if err != nil {
			logger.Debug("Skipping invalid declaration template", "template", line, "error", err)
			continue
		}
		types = append(types, t)
	}

	if includeDefaults {
		for _, pair := range allPairs {
			if ExistsTemplateFor(pair.kind, pair.pos, types) {
				continue
			}
			if t, err := New(pair.kind, pair.pos); err == nil {
				types = append(types, t)
			}
		}
	}

	return types
}

// ExistsTemplateFor reports whether list contains a type with the given kind
// and body position.
func ExistsTemplateFor(kind lurchtypes.DeclarationKind, pos lurchtypes.BodyPosition, list []*Type) bool {
	for _, t := range list {
		if t.kind == kind && t.bodyPosition == pos {
			return true
		}
	}
	return false
}

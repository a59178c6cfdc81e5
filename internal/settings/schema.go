package settings

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lurchmath/lurchmath-sub002/internal/data/embedded"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// LoadSchema parses the embedded settings catalog into a SettingsSchema. The
// catalog's own defaults are validated against their definitions, so a bad
// catalog fails loudly at startup instead of surfacing as odd dialog
// behavior later.
func LoadSchema() (*lurchtypes.SettingsSchema, error) {
	return parseSchema(embedded.SettingsCatalogData)
}

func parseSchema(data []byte) (*lurchtypes.SettingsSchema, error) {
	var schema lurchtypes.SettingsSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse settings catalog: %w", err)
	}

	seen := make(map[string]bool)
	for _, category := range schema.Categories {
		for _, def := range category.Settings {
			if def.Key == "" {
				return nil, fmt.Errorf("settings catalog: category %q contains a definition with no key", category.Name)
			}
			if seen[def.Key] {
				return nil, fmt.Errorf("settings catalog: duplicate key %q", def.Key)
			}
			seen[def.Key] = true

			if def.Type == lurchtypes.SettingNote {
				continue
			}
			if err := ValidateValue(def, def.Default); err != nil {
				return nil, fmt.Errorf("settings catalog: default for %q: %w", def.Key, err)
			}
		}
	}

	return &schema, nil
}

// Package embedded provides access to embedded catalog data files.
package embedded

import _ "embed"

// SettingsCatalogData contains the embedded settings schema catalog YAML data.
//
//go:embed settings.yaml
var SettingsCatalogData []byte

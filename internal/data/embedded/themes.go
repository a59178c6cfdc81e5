package embedded

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed themes/*.yaml
var themeFiles embed.FS

// ThemeData returns the embedded YAML for the named theme.
func ThemeData(name string) ([]byte, error) {
	return themeFiles.ReadFile("themes/" + name + ".yaml")
}

// ThemeNames lists the embedded theme names, sorted.
func ThemeNames() []string {
	entries, err := themeFiles.ReadDir("themes")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// Settings combines the catalog schema with a value store. Reads resolve in
// layers: environment overrides, then stored values, then catalog defaults.
// Writes validate against the catalog before they persist. Settings
// implements lurchtypes.SettingsProvider, so it plugs directly into the
// declaration engine and the document metadata overlay.
type Settings struct {
	schema    *lurchtypes.SettingsSchema
	store     Store
	overrides map[string]string
}

// New creates a Settings front end over the given schema and store.
func New(schema *lurchtypes.SettingsSchema, store Store) *Settings {
	return &Settings{
		schema:    schema,
		store:     store,
		overrides: make(map[string]string),
	}
}

// Schema returns the settings catalog.
func (s *Settings) Schema() *lurchtypes.SettingsSchema {
	return s.schema
}

// Get returns the effective value for key: an environment override if one
// applies, else the stored value, else the catalog default, else the empty
// string. Unknown keys resolve to the empty string, per the
// lurchtypes.SettingsProvider contract.
func (s *Settings) Get(key string) string {
	if value, ok := s.overrides[key]; ok {
		return value
	}
	if value, ok := s.store.Get(key); ok {
		return value
	}
	if def, ok := s.schema.Definition(key); ok {
		return def.Default
	}
	return ""
}

// GetBool returns the effective value of a boolean setting. Unparseable
// values fall back to the catalog default, then to false.
func (s *Settings) GetBool(key string) bool {
	if b, err := ParseBool(s.Get(key)); err == nil {
		return b
	}
	if def, ok := s.schema.Definition(key); ok {
		if b, err := ParseBool(def.Default); err == nil {
			return b
		}
	}
	return false
}

// GetInt returns the effective value of an integer setting. Unparseable
// values fall back to the catalog default, then to zero.
func (s *Settings) GetInt(key string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s.Get(key))); err == nil {
		return n
	}
	if def, ok := s.schema.Definition(key); ok {
		if n, err := strconv.Atoi(def.Default); err == nil {
			return n
		}
	}
	return 0
}

// Set validates value against the catalog and persists it. Keys the catalog
// does not define are rejected with ErrUnknownKey.
func (s *Settings) Set(key, value string) error {
	def, ok := s.schema.Definition(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := ValidateValue(def, value); err != nil {
		return err
	}
	if err := s.store.Set(key, value); err != nil {
		return err
	}
	logger.SettingOperation("set", key, value)
	return nil
}

// Reset removes the stored value for key, so reads fall back to the catalog
// default. Resetting a key with no stored value is a no-op.
func (s *Settings) Reset(key string) error {
	if _, ok := s.schema.Definition(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := s.store.Delete(key); err != nil {
		return err
	}
	logger.SettingOperation("reset", key, "")
	return nil
}

// ResetAll removes every stored value.
func (s *Settings) ResetAll() error {
	for _, key := range s.store.Keys() {
		if err := s.store.Delete(key); err != nil {
			return err
		}
	}
	logger.SettingOperation("reset", "all settings", "")
	return nil
}

// Keys returns every key the catalog defines, in catalog order.
func (s *Settings) Keys() []string {
	return s.schema.Keys()
}

// Changed returns the keys whose effective value differs from the catalog
// default, with their current values.
func (s *Settings) Changed() map[string]string {
	changed := make(map[string]string)
	for _, key := range s.schema.Keys() {
		def, _ := s.schema.Definition(key)
		if value := s.Get(key); value != def.Default {
			changed[key] = value
		}
	}
	return changed
}

// Export renders every defined setting as sorted "key = value" lines. Values
// containing newlines are quoted so each setting stays on one line.
func (s *Settings) Export() string {
	keys := s.schema.Keys()
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := s.Get(key)
		if strings.Contains(value, "\n") {
			value = strconv.Quote(value)
		}
		fmt.Fprintf(&b, "%s = %s\n", key, value)
	}
	return b.String()
}

// exportDefaults renders the catalog defaults in the same format as Export.
func (s *Settings) exportDefaults() string {
	keys := s.schema.Keys()
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		def, _ := s.schema.Definition(key)
		value := def.Default
		if strings.Contains(value, "\n") {
			value = strconv.Quote(value)
		}
		fmt.Fprintf(&b, "%s = %s\n", key, value)
	}
	return b.String()
}

package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "LURCH_"

// EnvName returns the environment variable that overrides the given setting
// key: the prefix plus the key uppercased with spaces, dots, and dashes
// replaced by underscores. "declaration type templates" becomes
// "LURCH_DECLARATION_TYPE_TEMPLATES".
func EnvName(prefix, key string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-':
			return '_'
		default:
			return r
		}
	}, key)
	return prefix + strings.ToUpper(mapped)
}

// LoadEnvOverrides scans the process environment for prefixed variables
// matching catalog keys and applies them as the top resolution layer.
// Overrides never persist; values that fail validation are skipped with a
// warning.
func (s *Settings) LoadEnvOverrides(prefix string) {
	for _, key := range s.schema.Keys() {
		value, ok := os.LookupEnv(EnvName(prefix, key))
		if !ok {
			continue
		}
		s.applyOverride(key, value, "environment")
	}
}

// LoadDotEnv applies overrides from a .env file, below any process
// environment overrides already loaded. A missing file is not an error.
func (s *Settings) LoadDotEnv(path, prefix string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	for _, key := range s.schema.Keys() {
		value, ok := envMap[EnvName(prefix, key)]
		if !ok {
			continue
		}
		if _, already := s.overrides[key]; already {
			continue
		}
		s.applyOverride(key, value, path)
	}
	return nil
}

func (s *Settings) applyOverride(key, value, source string) {
	def, _ := s.schema.Definition(key)
	if err := ValidateValue(def, value); err != nil {
		logger.Warn("Ignoring invalid setting override", "key", key, "source", source, "error", err)
		return
	}
	s.overrides[key] = value
	logger.Debug("Applied setting override", "key", key, "source", source)
}

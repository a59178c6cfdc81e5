package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/settings"
)

// SettingsService owns the user's settings: the catalog schema, the backing
// store, and the environment overlay. It implements
// lurchtypes.SettingsProvider, so other services read settings through it
// without knowing where values come from.
type SettingsService struct {
	initialized bool
	store       settings.Store
	settings    *settings.Settings
	skipEnv     bool
}

// NewSettingsService creates a settings service that persists to a JSON file
// under the user configuration directory and applies environment overrides.
func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// NewSettingsServiceWithStore creates a settings service over the given
// store, with no environment overlay. Tests and ephemeral sessions use this
// with a memory store.
func NewSettingsServiceWithStore(store settings.Store) *SettingsService {
	return &SettingsService{store: store, skipEnv: true}
}

// Name returns the service name "settings" for registration.
func (s *SettingsService) Name() string {
	return "settings"
}

// Initialize loads the catalog schema, opens the store, and applies the
// environment overlay. Priority: process environment, then the working
// directory's .env, then the config directory's .env, then stored values,
// then catalog defaults.
func (s *SettingsService) Initialize() error {
	if s.initialized {
		return nil
	}

	schema, err := settings.LoadSchema()
	if err != nil {
		return err
	}

	store := s.store
	var configDir string
	if store == nil {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to locate user config directory: %w", err)
		}
		configDir = filepath.Join(userDir, "lurchkit")
		fileStore, err := settings.NewFileStore(filepath.Join(configDir, "settings.json"))
		if err != nil {
			return err
		}
		store = fileStore
	}

	s.settings = settings.New(schema, store)

	if !s.skipEnv {
		s.settings.LoadEnvOverrides(settings.EnvPrefix)
		if workDir, err := os.Getwd(); err == nil {
			if err := s.settings.LoadDotEnv(filepath.Join(workDir, ".env"), settings.EnvPrefix); err != nil {
				logger.Warn("Failed to load local .env", "error", err)
			}
		}
		if configDir != "" {
			if err := s.settings.LoadDotEnv(filepath.Join(configDir, ".env"), settings.EnvPrefix); err != nil {
				logger.Warn("Failed to load config .env", "error", err)
			}
		}
	}

	s.initialized = true
	logger.ServiceOperation("settings", "initialized")
	return nil
}

// Settings returns the underlying settings front end.
func (s *SettingsService) Settings() (*settings.Settings, error) {
	if !s.initialized {
		return nil, fmt.Errorf("settings service not initialized")
	}
	return s.settings, nil
}

// Get returns the effective value for key, or the empty string before
// initialization. This is the lurchtypes.SettingsProvider implementation.
func (s *SettingsService) Get(key string) string {
	if !s.initialized {
		return ""
	}
	return s.settings.Get(key)
}

// GetBool returns the effective value of a boolean setting.
func (s *SettingsService) GetBool(key string) bool {
	if !s.initialized {
		return false
	}
	return s.settings.GetBool(key)
}

// GetInt returns the effective value of an integer setting.
func (s *SettingsService) GetInt(key string) int {
	if !s.initialized {
		return 0
	}
	return s.settings.GetInt(key)
}

// Set validates and persists a setting value.
func (s *SettingsService) Set(key, value string) error {
	if !s.initialized {
		return fmt.Errorf("settings service not initialized")
	}
	return s.settings.Set(key, value)
}

// Reset removes the stored value for key.
func (s *SettingsService) Reset(key string) error {
	if !s.initialized {
		return fmt.Errorf("settings service not initialized")
	}
	return s.settings.Reset(key)
}

// ResetAll removes every stored value.
func (s *SettingsService) ResetAll() error {
	if !s.initialized {
		return fmt.Errorf("settings service not initialized")
	}
	return s.settings.ResetAll()
}

// Keys returns every key the catalog defines, in catalog order.
func (s *SettingsService) Keys() []string {
	if !s.initialized {
		return nil
	}
	return s.settings.Keys()
}

// Export renders every setting as sorted "key = value" lines.
func (s *SettingsService) Export() (string, error) {
	if !s.initialized {
		return "", fmt.Errorf("settings service not initialized")
	}
	return s.settings.Export(), nil
}

// Changed returns the settings whose effective value differs from the
// catalog default.
func (s *SettingsService) Changed() (map[string]string, error) {
	if !s.initialized {
		return nil, fmt.Errorf("settings service not initialized")
	}
	return s.settings.Changed(), nil
}

// Dialog builds the settings dialog populated with current values.
func (s *SettingsService) Dialog() (*settings.Dialog, error) {
	if !s.initialized {
		return nil, fmt.Errorf("settings service not initialized")
	}
	return settings.BuildDialog(s.settings.Schema(), s.settings), nil
}

// Diff renders the difference between current values and catalog defaults.
func (s *SettingsService) Diff() (string, error) {
	if !s.initialized {
		return "", fmt.Errorf("settings service not initialized")
	}
	return settings.DiffAgainstDefaults(s.settings), nil
}

// GetGlobalSettingsService returns the settings service from the global
// registry.
func GetGlobalSettingsService() (*SettingsService, error) {
	service, err := GetGlobalRegistry().GetService("settings")
	if err != nil {
		return nil, err
	}

	settingsService, ok := service.(*SettingsService)
	if !ok {
		return nil, fmt.Errorf("service 'settings' is not a SettingsService")
	}

	return settingsService, nil
}

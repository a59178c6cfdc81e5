// Package embedded provides access to embedded help topic files.
// Help topics are markdown documents compiled into the binary and rendered
// through the markdown service by the shell's help command.
package embedded

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// HelpFS contains all embedded help topic files.
//
//go:embed help/*.md
var HelpFS embed.FS

// HelpLoader implements the TopicLoader interface for embedded help topics.
type HelpLoader struct{}

// NewHelpLoader creates a new HelpLoader for accessing embedded help topics.
func NewHelpLoader() *HelpLoader {
	return &HelpLoader{}
}

// LoadTopic loads the content of an embedded help topic by name. The name may
// be given with or without the .md extension.
func (l *HelpLoader) LoadTopic(name string) (string, error) {
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}

	content, err := HelpFS.ReadFile(path.Join("help", name))
	if err != nil {
		return "", fmt.Errorf("help topic not found: %s", strings.TrimSuffix(name, ".md"))
	}

	return string(content), nil
}

// ListTopics returns the names of all available help topics, sorted, without
// the .md extension.
func (l *HelpLoader) ListTopics() ([]string, error) {
	entries, err := HelpFS.ReadDir("help")
	if err != nil {
		return nil, fmt.Errorf("failed to read help directory: %w", err)
	}

	var topics []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".md") {
			topics = append(topics, strings.TrimSuffix(name, ".md"))
		}
	}

	sort.Strings(topics)
	return topics, nil
}

// TopicExists reports whether a topic with the given name is embedded.
func (l *HelpLoader) TopicExists(name string) bool {
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}

	_, err := HelpFS.ReadFile(path.Join("help", name))
	return err == nil
}

// HelpLoaderService provides the HelpLoader as a toolkit service, so the
// shell and CLI can resolve topics through the service registry.
type HelpLoaderService struct {
	loader *HelpLoader
}

// NewHelpLoaderService creates a new service wrapper for the HelpLoader.
func NewHelpLoaderService() *HelpLoaderService {
	return &HelpLoaderService{
		loader: NewHelpLoader(),
	}
}

// Name returns the service name for registration.
func (s *HelpLoaderService) Name() string {
	return "help-loader"
}

// Initialize sets up the HelpLoaderService.
func (s *HelpLoaderService) Initialize() error {
	// Nothing to do for an embedded filesystem.
	return nil
}

// GetLoader returns the underlying HelpLoader for use by other components.
func (s *HelpLoaderService) GetLoader() lurchtypes.TopicLoader {
	return s.loader
}

// Package lurchtypes defines core architectural interfaces for the Lurch
// toolkit. This file contains the fundamental interfaces that enable the
// modular service architecture and the explicit collaborator contracts the
// declaration engine depends on.
package lurchtypes

// Service defines the interface for Lurch toolkit services that provide
// specific functionality. Services are registered at startup and initialized
// once before use.
type Service interface {
	Name() string
	Initialize() error
}

// ServiceRegistry manages the registration and retrieval of services.
// It provides a centralized way to access services across the application.
type ServiceRegistry interface {
	GetService(name string) (Service, error)
	RegisterService(service Service) error
}

// SettingsProvider supplies string-valued settings by key. The declaration
// engine reads its configured templates through this interface rather than
// through any global settings state, so callers choose the source: the user's
// persisted settings, a document's metadata overlay, or a test fixture.
type SettingsProvider interface {
	// Get returns the value for key, or the empty string when unset.
	Get(key string) string
}

// SettingsProviderFunc adapts a plain function to the SettingsProvider
// interface, in the manner of http.HandlerFunc.
type SettingsProviderFunc func(key string) string

// Get calls f(key).
func (f SettingsProviderFunc) Get(key string) string { return f(key) }

// TopicLoader provides access to help topic documents by name. The shell and
// CLI render loaded topics through the markdown renderer.
type TopicLoader interface {
	// LoadTopic returns the markdown content of the named topic.
	LoadTopic(name string) (string, error)

	// ListTopics returns the names of all available topics.
	ListTopics() ([]string, error)

	// TopicExists reports whether the named topic is available.
	TopicExists(name string) bool
}

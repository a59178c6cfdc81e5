package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/lurchmath/lurchmath-sub002/internal/version"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// Metadata addressing used by the toolkit itself.
const (
	// CategorySystem holds metadata the toolkit manages, like the format
	// version.
	CategorySystem = "system"
	// CategorySettings holds per-document setting overrides.
	CategorySettings = "settings"
	// KeyFormatVersion is the system key recording which toolkit version
	// wrote the document.
	KeyFormatVersion = "format version"
)

// ErrIncompatibleFormat indicates a document written by a newer major version
// of the toolkit than the one reading it.
var ErrIncompatibleFormat = errors.New("incompatible document format version")

// Document is a structured document: a root environment of content nodes plus
// metadata addressed by category and key. Every metadata value is stored as
// JSON, so arbitrary structures round-trip through save and load.
type Document struct {
	Root     *Node                                 `json:"root"`
	Metadata map[string]map[string]json.RawMessage `json:"metadata,omitempty"`
}

// New returns an empty document stamped with the current format version.
func New() *Document {
	d := &Document{Root: NewEnvironment()}
	// Stamping cannot fail for a plain string value.
	_ = d.SetMetadata(CategorySystem, KeyFormatVersion, version.GetBaseVersion())
	return d
}

// SetMetadata stores value under the given category and key, replacing any
// previous value. The value is marshaled to JSON.
func (d *Document) SetMetadata(category, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("metadata value for %s/%s not serializable: %w", category, key, err)
	}
	if d.Metadata == nil {
		d.Metadata = make(map[string]map[string]json.RawMessage)
	}
	if d.Metadata[category] == nil {
		d.Metadata[category] = make(map[string]json.RawMessage)
	}
	d.Metadata[category][key] = raw
	return nil
}

// GetMetadata unmarshals the value stored under category and key into out.
// It returns false with no error when nothing is stored there.
func (d *Document) GetMetadata(category, key string, out any) (bool, error) {
	raw, ok := d.Metadata[category][key]
	if !ok {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("metadata value for %s/%s: %w", category, key, err)
	}
	return true, nil
}

// DeleteMetadata removes the value stored under category and key. Removing
// the last key of a category removes the category as well.
func (d *Document) DeleteMetadata(category, key string) {
	keys, ok := d.Metadata[category]
	if !ok {
		return
	}
	delete(keys, key)
	if len(keys) == 0 {
		delete(d.Metadata, category)
	}
	if len(d.Metadata) == 0 {
		d.Metadata = nil
	}
}

// MetadataKeys returns the keys stored under category, sorted.
func (d *Document) MetadataKeys(category string) []string {
	keys := make([]string, 0, len(d.Metadata[category]))
	for key := range d.Metadata[category] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MetadataCategories returns the categories with at least one key, sorted.
func (d *Document) MetadataCategories() []string {
	categories := make([]string, 0, len(d.Metadata))
	for category := range d.Metadata {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Setting returns the document-level override for the given setting key, or
// the fallback provider's value when the document has none. The document
// therefore acts as a lurchtypes.SettingsProvider layered over another.
func (d *Document) Setting(key string, fallback lurchtypes.SettingsProvider) string {
	var value string
	ok, err := d.GetMetadata(CategorySettings, key, &value)
	if err == nil && ok {
		return value
	}
	if fallback == nil {
		return ""
	}
	return fallback.Get(key)
}

// FormatVersion returns the toolkit version recorded in the document, or the
// empty string for documents that predate format stamping.
func (d *Document) FormatVersion() string {
	var v string
	ok, err := d.GetMetadata(CategorySystem, KeyFormatVersion, &v)
	if !ok || err != nil {
		return ""
	}
	return v
}

// CheckFormatVersion verifies the document can be read by this toolkit
// version. Documents without a recorded version are accepted; documents
// recording a newer major version are rejected with ErrIncompatibleFormat.
func CheckFormatVersion(d *Document) error {
	recorded := d.FormatVersion()
	if recorded == "" {
		return nil
	}
	written, err := semver.NewVersion(recorded)
	if err != nil {
		return fmt.Errorf("%w: cannot parse recorded version %q: %v", ErrIncompatibleFormat, recorded, err)
	}
	current, err := semver.NewVersion(version.GetVersion())
	if err != nil {
		return fmt.Errorf("current version %q is not semver: %w", version.GetVersion(), err)
	}
	if written.Major() > current.Major() {
		return fmt.Errorf("%w: document written by v%s, this build is v%s", ErrIncompatibleFormat, recorded, version.GetVersion())
	}
	return nil
}

// Save writes the document as indented JSON.
func (d *Document) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Load reads a document from JSON and checks its format version.
func Load(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if d.Root == nil {
		d.Root = NewEnvironment()
	}
	if err := CheckFormatVersion(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveFile writes the document to the given path.
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	defer func() { _ = f.Close() }()
	return d.Save(f)
}

// LoadFile reads a document from the given path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

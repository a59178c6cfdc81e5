package document

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurchmath/lurchmath-sub002/internal/version"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

func TestMetadataRoundTrip(t *testing.T) {
	doc := New()

	t.Run("string value", func(t *testing.T) {
		require.NoError(t, doc.SetMetadata("main", "title", "Euclid, Book I"))

		var title string
		ok, err := doc.GetMetadata("main", "title", &title)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Euclid, Book I", title)
	})

	t.Run("structured value", func(t *testing.T) {
		type authorInfo struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		require.NoError(t, doc.SetMetadata("main", "author", authorInfo{Name: "K. Monks", Email: "monks@example.edu"}))

		var back authorInfo
		ok, err := doc.GetMetadata("main", "author", &back)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "K. Monks", back.Name)
	})

	t.Run("missing key", func(t *testing.T) {
		var out string
		ok, err := doc.GetMetadata("main", "no such key", &out)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing category", func(t *testing.T) {
		var out string
		ok, err := doc.GetMetadata("nowhere", "title", &out)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nil out just probes existence", func(t *testing.T) {
		ok, err := doc.GetMetadata("main", "title", nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("type mismatch surfaces an error", func(t *testing.T) {
		var out int
		ok, err := doc.GetMetadata("main", "title", &out)
		assert.True(t, ok)
		assert.Error(t, err)
	})
}

func TestDeleteMetadata(t *testing.T) {
	doc := New()
	require.NoError(t, doc.SetMetadata("notes", "a", 1))
	require.NoError(t, doc.SetMetadata("notes", "b", 2))

	doc.DeleteMetadata("notes", "a")
	assert.Equal(t, []string{"b"}, doc.MetadataKeys("notes"))

	// Removing the last key removes the category.
	doc.DeleteMetadata("notes", "b")
	assert.Empty(t, doc.MetadataKeys("notes"))
	assert.NotContains(t, doc.MetadataCategories(), "notes")

	// Deleting from a missing category is harmless.
	doc.DeleteMetadata("nowhere", "x")
}

func TestMetadataKeysSorted(t *testing.T) {
	doc := New()
	require.NoError(t, doc.SetMetadata("m", "zebra", 1))
	require.NoError(t, doc.SetMetadata("m", "apple", 2))
	require.NoError(t, doc.SetMetadata("m", "mango", 3))

	assert.Equal(t, []string{"apple", "mango", "zebra"}, doc.MetadataKeys("m"))
}

func TestDocumentSettingOverlay(t *testing.T) {
	fallback := lurchtypes.SettingsProviderFunc(func(key string) string {
		if key == "application name" {
			return "Lurch"
		}
		return ""
	})

	doc := New()

	t.Run("falls back when document has no override", func(t *testing.T) {
		assert.Equal(t, "Lurch", doc.Setting("application name", fallback))
	})

	t.Run("document override wins", func(t *testing.T) {
		require.NoError(t, doc.SetMetadata(CategorySettings, "application name", "My Course Notes"))
		assert.Equal(t, "My Course Notes", doc.Setting("application name", fallback))
	})

	t.Run("nil fallback yields empty", func(t *testing.T) {
		assert.Equal(t, "", doc.Setting("unset key", nil))
	})
}

func TestFormatVersion(t *testing.T) {
	t.Run("new documents are stamped", func(t *testing.T) {
		doc := New()
		assert.Equal(t, version.GetBaseVersion(), doc.FormatVersion())
		assert.NoError(t, CheckFormatVersion(doc))
	})

	t.Run("unstamped documents are accepted", func(t *testing.T) {
		doc := &Document{Root: NewEnvironment()}
		assert.Equal(t, "", doc.FormatVersion())
		assert.NoError(t, CheckFormatVersion(doc))
	})

	t.Run("newer major version is rejected", func(t *testing.T) {
		doc := New()
		require.NoError(t, doc.SetMetadata(CategorySystem, KeyFormatVersion, "99.0.0"))

		err := CheckFormatVersion(doc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncompatibleFormat))
	})

	t.Run("garbage version is rejected", func(t *testing.T) {
		doc := New()
		require.NoError(t, doc.SetMetadata(CategorySystem, KeyFormatVersion, "not a version"))

		err := CheckFormatVersion(doc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncompatibleFormat))
	})
}

func TestSaveAndLoad(t *testing.T) {
	doc := New()
	require.NoError(t, doc.SetMetadata("main", "title", "Sets and Functions"))
	decl := NewDeclaration(NewSymbol("x")).MakeIntoA(RoleLet).MakeIntoA(RoleGiven)
	doc.Root.AppendChild(decl)

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))

	back, err := Load(&buf)
	require.NoError(t, err)

	var title string
	ok, err := back.GetMetadata("main", "title", &title)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Sets and Functions", title)

	require.Len(t, back.Root.Children, 1)
	assert.True(t, back.Root.Children[0].IsA(RoleLet))
	assert.Equal(t, ":[x]", back.Root.Children[0].String())
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.lurch.json")

	doc := New()
	require.NoError(t, doc.SetMetadata("main", "course", "Math 299"))
	require.NoError(t, doc.SaveFile(path))

	back, err := LoadFile(path)
	require.NoError(t, err)

	var course string
	ok, err := back.GetMetadata("main", "course", &course)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Math 299", course)
}

func TestLoadRejectsNewerMajor(t *testing.T) {
	doc := New()
	require.NoError(t, doc.SetMetadata(CategorySystem, KeyFormatVersion, "99.1.0"))

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))

	_, err := Load(&buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleFormat))
}

func TestLoadGarbage(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("this is not json")))
	assert.Error(t, err)
}

func TestLoadSuppliesMissingRoot(t *testing.T) {
	back, err := Load(bytes.NewReader([]byte(`{"metadata":{}}`)))
	require.NoError(t, err)
	require.NotNil(t, back.Root)
	assert.Equal(t, KindEnvironment, back.Root.Kind)
}

package l10n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/strutkit/strut/pkg/l10n"
)

func TestLoadDir(t *testing.T) {
	t.Parallel()

	locales, err := l10n.New("en", "es", "de")
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("greeting: Hello\nfarewell: Goodbye\n")},
		"es.yml":  {Data: []byte("greeting: Hola\n")},
	}

	catalog, err := l10n.LoadDir(fsys, locales)
	require.NoError(t, err)

	t.Run("direct lookup", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Hola", catalog.T("es", "greeting"))
		require.Equal(t, "Hello", catalog.T("en", "greeting"))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Goodbye", catalog.T("es", "farewell"))
	})

	t.Run("falls back to the key itself", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "missing.key", catalog.T("es", "missing.key"))
		require.Equal(t, "missing.key", catalog.T("en", "missing.key"))
	})

	t.Run("missing catalog file is skipped", func(t *testing.T) {
		t.Parallel()
		require.False(t, catalog.Has("de"))
		require.Equal(t, "Hello", catalog.T("de", "greeting"))
	})

	t.Run("languages with messages", func(t *testing.T) {
		t.Parallel()
		require.ElementsMatch(t, []string{"en", "es"}, catalog.Languages())
		require.True(t, catalog.Has("en"))
	})
}

func TestLoadDir_BadYAML(t *testing.T) {
	t.Parallel()

	locales, err := l10n.New("en")
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("greeting: [unclosed")},
	}

	_, err = l10n.LoadDir(fsys, locales)
	require.ErrorIs(t, err, l10n.ErrCatalogDecode)
}

package registry_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/lang"
	"github.com/dmitrymomot/mailtmpl/registry"
)

func writeTemplate(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func newResolver(reg *registry.Registry, aliases map[string]string) *registry.Resolver {
	return registry.NewResolver(registry.Config{
		Languages:        lang.DefaultConfig(),
		DefaultExtension: ".html",
		Aliases:          aliases,
	}, reg)
}

func TestResolverResolve(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (string, *registry.Resolver) {
		t.Helper()
		dir := t.TempDir()
		writeTemplate(t, dir, "Zodiac_en-us.html", "<html><title>Hi</title></html>")
		writeTemplate(t, dir, "Zodiac_es.html", "<html><title>Hola</title></html>")
		return dir, newResolver(registry.New(), nil)
	}

	t.Run("resolves the exact language", func(t *testing.T) {
		t.Parallel()
		dir, resolver := setup(t)

		res, err := resolver.Resolve(dir, "Zodiac", "es", "")
		require.NoError(t, err)
		assert.Equal(t, "es", res.Language)
		assert.Equal(t, filepath.Join(dir, "Zodiac_es.html"), res.Path)
		assert.Contains(t, res.Text, "Hola")
	})

	t.Run("falls back from region to base language", func(t *testing.T) {
		t.Parallel()
		dir, resolver := setup(t)

		res, err := resolver.Resolve(dir, "Zodiac", "es-MX", "")
		require.NoError(t, err)
		assert.Equal(t, "es", res.Language)
	})

	t.Run("falls back to the default language", func(t *testing.T) {
		t.Parallel()
		dir, resolver := setup(t)

		res, err := resolver.Resolve(dir, "Zodiac", "en-ca", "")
		require.NoError(t, err)
		assert.Equal(t, "en-us", res.Language)

		res, err = resolver.Resolve(dir, "Zodiac", "fr", "")
		require.NoError(t, err)
		assert.Equal(t, "en-us", res.Language)
	})

	t.Run("applies the language alias map before expansion", func(t *testing.T) {
		t.Parallel()
		dir, _ := setup(t)
		resolver := newResolver(registry.New(), map[string]string{"castellano": "es"})

		res, err := resolver.Resolve(dir, "Zodiac", "castellano", "")
		require.NoError(t, err)
		assert.Equal(t, "es", res.Language)
	})

	t.Run("honors an extension override", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTemplate(t, dir, "Digest_en-us.tpl", "digest body")
		resolver := newResolver(registry.New(), nil)

		res, err := resolver.Resolve(dir, "Digest", "en-US", ".tpl")
		require.NoError(t, err)
		assert.Equal(t, "digest body", res.Text)
	})

	t.Run("ignores trailing path separators on the folder", func(t *testing.T) {
		t.Parallel()
		dir, resolver := setup(t)

		res, err := resolver.Resolve(dir+string(os.PathSeparator), "Zodiac", "es", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Zodiac_es.html"), res.Path)
	})

	t.Run("fails with not-found naming the template and language", func(t *testing.T) {
		t.Parallel()
		dir, resolver := setup(t)

		_, err := resolver.Resolve(dir, "Ghost", "es-MX", "")
		require.ErrorIs(t, err, registry.ErrTemplateNotFound)
		assert.Contains(t, err.Error(), "Ghost")
		assert.Contains(t, err.Error(), "es-MX")
	})

	t.Run("normalizes template text on load", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTemplate(t, dir, "Styled_en-us.html", "<style>@media print {}</style>")
		resolver := newResolver(registry.New(), nil)

		res, err := resolver.Resolve(dir, "Styled", "en-US", "")
		require.NoError(t, err)
		assert.Contains(t, res.Text, "@@media")
	})
}

func TestResolverCaches(t *testing.T) {
	t.Parallel()

	t.Run("resolution survives file deletion", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeTemplate(t, dir, "Zodiac_en-us.html", "<html><title>Hi</title></html>")
		resolver := newResolver(registry.New(), nil)

		first, err := resolver.Resolve(dir, "Zodiac", "en_CA", "")
		require.NoError(t, err)
		assert.Equal(t, "en-us", first.Language)

		// Write-once caches must serve every later request without disk.
		require.NoError(t, os.Remove(path))

		second, err := resolver.Resolve(dir, "Zodiac", "en-ca", "")
		require.NoError(t, err)
		assert.Equal(t, first.Key, second.Key)
		assert.Equal(t, first.Text, second.Text)

		third, err := resolver.Resolve(dir, "Zodiac", "en-US", "")
		require.NoError(t, err)
		assert.Equal(t, first.Key, third.Key)
	})

	t.Run("pre-recorded path with unreadable file fails with read error", func(t *testing.T) {
		t.Parallel()
		cfg := lang.DefaultConfig()
		reg := registry.New()
		reg.SetPath(cfg.Key("Ghost", "en-US"), "/nonexistent/Ghost_en-us.html", "en-us")
		resolver := newResolver(reg, nil)

		_, err := resolver.Resolve(t.TempDir(), "Ghost", "en-US", "")
		require.ErrorIs(t, err, registry.ErrTemplateRead)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directories do not count as template files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Zodiac_en-us.html"), 0755))
		resolver := newResolver(registry.New(), nil)

		_, err := resolver.Resolve(dir, "Zodiac", "en-US", "")
		require.ErrorIs(t, err, registry.ErrTemplateNotFound)
	})
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
origin: https://shop.example.com
javascript:
  sections:
    source: js/sections.js
    out_dir: static/js
pages:
  - path: /
    title: Home
    sections:
      - component: header
        type: header1
        content:
          header1:
            brand:
              name: Acme
      - component: hero
        type: hero1
    content_source: pages/home.json
  - path: /about
    title: About
not_found:
  - component: header
    type: header1
`

const homeJSON = `[
  {"component": "products", "type": "products1", "content": {"products1": {"title": "Picks"}}}
]`

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifestYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "home.json"), []byte(homeJSON), 0o644))
	return dir
}

func TestLoadManifest(t *testing.T) {
	dir := writeSite(t)

	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", m.Origin)
	require.Len(t, m.Pages, 2)
	home := m.Pages[0]
	require.Len(t, home.Sections, 3)
	assert.Equal(t, "header", home.Sections[0].Component)
	assert.Equal(t, "products", home.Sections[2].Component)

	override, ok := home.Sections[0].Override()
	require.True(t, ok)
	name, _ := resolver.Lookup(override, "brand.name")
	assert.Equal(t, "Acme", name)

	assert.Equal(t, filepath.Join(dir, "js/sections.js"), m.Resolve(m.JavascriptTargets["sections"].Source))
	assert.Len(t, m.NotFound, 1)
}

func TestLoadManifestMissingContentSource(t *testing.T) {
	dir := writeSite(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "pages", "home.json")))

	_, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	assert.Error(t, err)
}

func TestLoadManifestToleratesMalformedContent(t *testing.T) {
	dir := writeSite(t)
	export := `[
  {"component": "header", "type": "header1"},
  {"component": "hero", "type": "hero1", "content": []}
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "home.json"), []byte(export), 0o644))
	manifest := strings.Replace(manifestYAML, "not_found:", `  - path: /broken
    sections:
      - component: footer
        type: footer1
        content: oops
not_found:`, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644))

	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)
	require.Len(t, m.Pages, 3)

	home := m.Pages[0]
	require.Len(t, home.Sections, 4)
	assert.Equal(t, []interface{}{}, home.Sections[3].Content)
	assert.Equal(t, "oops", m.Pages[2].Sections[0].Content)
}

func TestLoadManifestRequiresPagePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(file, []byte("pages:\n  - title: Nowhere\n"), 0o644))

	_, err := LoadManifest(file)
	assert.Error(t, err)
}

func TestLoadEnvDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MANIFEST", "")

	env := LoadEnv()
	assert.Equal(t, "9010", env.Port)
	assert.Equal(t, "debug", env.LogLevel)
	assert.Equal(t, "manifest.yaml", env.Manifest)
}

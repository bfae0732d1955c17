package javascript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZacxDev/storefront-sections/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, script string) *config.SiteManifest {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "sections.js"), []byte(script), 0o644))
	manifest := "pages:\n  - path: /\njavascript:\n  sections:\n    source: js/sections.js\n    out_dir: static/js\n"
	file := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(file, []byte(manifest), 0o644))

	m, err := config.LoadManifest(file)
	require.NoError(t, err)
	return m
}

func TestCompileJSTarget(t *testing.T) {
	site := t.TempDir()
	out := t.TempDir()
	m := writeManifest(t, site, "document.querySelectorAll('[data-carousel]').forEach(function (el) { el.dataset.ready = 'true' })\n")

	emitted, err := CompileJSTarget(m, out)
	require.NoError(t, err)

	public := emitted["sections"]
	require.NotEmpty(t, public)
	assert.True(t, strings.HasPrefix(public, "/static/js/sections_"))
	assert.True(t, strings.HasSuffix(public, ".js"))

	bundle, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(public)))
	require.NoError(t, err)
	assert.Contains(t, string(bundle), "sourceMappingURL=")

	_, err = os.Stat(filepath.Join(out, filepath.FromSlash(public)+".map"))
	assert.NoError(t, err)
}

func TestCompileJSTargetReportsErrors(t *testing.T) {
	m := writeManifest(t, t.TempDir(), "function (\n")

	_, err := CompileJSTarget(m, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "javascript target sections")
}

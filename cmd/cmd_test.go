package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_ORIGIN", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSectionsCommand(t *testing.T) {
	out, err := run(t, "sections")
	require.NoError(t, err)
	assert.Contains(t, out, "header")
	assert.Contains(t, out, "header1, header2, header3, ecomusHeader")
	assert.Contains(t, out, "layout1, layout2, layout3")
}

func TestResolveCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"footer1":{"sections":[]}}`), 0o644))

	out, err := run(t, "resolve", "footer", "footer1", "-c", file, "--render=false")
	require.NoError(t, err)

	var res resolver.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "footer1", res.Type)
	assert.Equal(t, []string{"sections"}, res.Backfilled)
}

func TestResolveCommandUnknownSection(t *testing.T) {
	_, err := run(t, "resolve", "banner", "banner1", "-c", "", "--render=false")
	assert.Error(t, err)
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "robots.txt"), []byte("User-agent: *"), 0o644))
	manifest := `
origin: https://shop.example.com
pages:
  - path: /
    title: Home
    sections:
      - component: header
        type: header1
  - path: /about
    title: About
    sections:
      - component: layout
        type: layout2
`
	file := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(file, []byte(manifest), 0o644))
	out := filepath.Join(dir, "public")

	_, err := run(t, "build", "-m", file, "-o", out)
	require.NoError(t, err)

	for _, f := range []string{"index.html", "about/index.html", "404.html", "static/robots.txt", "sitemap.xml"} {
		assert.FileExists(t, filepath.Join(out, f))
	}
	about, err := os.ReadFile(filepath.Join(out, "about", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(about), `data-type="layout2"`)
}

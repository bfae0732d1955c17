package config

// config/yaml.go

import (
	"os"
	"path/filepath"

	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type JavascriptTarget struct {
	Source string `yaml:"source"`
	OutDir string `yaml:"out_dir"`
}

type SiteManifest struct {
	Pages             []Page                      `yaml:"pages"`
	JavascriptTargets map[string]JavascriptTarget `yaml:"javascript"`
	Origin            string                      `yaml:"origin"`
	BaseLayout        string                      `yaml:"base_layout"`
	StaticDir         string                      `yaml:"static_dir"`
	NotFound          []sections.Payload          `yaml:"not_found"`

	// dir is the manifest's directory; relative sources resolve against it.
	dir string
}

type Page struct {
	Path          string             `yaml:"path"`
	Title         string             `yaml:"title"`
	Description   string             `yaml:"description"`
	Sections      []sections.Payload `yaml:"sections"`
	ContentSource string             `yaml:"content_source"`
	Scripts       []string           `yaml:"javascript_deps"`
}

func LoadManifest(filename string) (*SiteManifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var manifest SiteManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", filename)
	}
	manifest.dir = filepath.Dir(filename)

	for i, page := range manifest.Pages {
		if page.Path == "" {
			return nil, errors.Errorf("manifest %s: page %d has no path", filename, i)
		}
		if page.ContentSource == "" {
			continue
		}
		payloads, err := manifest.loadContent(page.ContentSource)
		if err != nil {
			return nil, err
		}
		manifest.Pages[i].Sections = append(manifest.Pages[i].Sections, payloads...)
	}

	return &manifest, nil
}

// Resolve returns p relative to the manifest directory unless it is absolute.
func (m *SiteManifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

func (m *SiteManifest) loadContent(source string) ([]sections.Payload, error) {
	f, err := os.Open(m.Resolve(source))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	payloads, err := sections.ParsePayloads(f)
	if err != nil {
		return nil, errors.Wrapf(err, "content source %s", source)
	}
	return payloads, nil
}

package handlers

import (
	"embed"
	"html/template"
	"os"
	"strings"

	"github.com/ZacxDev/storefront-sections/config"
	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed templates
var templatesFS embed.FS

// Site serves the pages of one manifest plus the section preview, admin and
// API routes.
type Site struct {
	catalog  *sections.Catalog
	manifest *config.SiteManifest
	logger   *zap.Logger
	// scripts maps javascript target names to emitted bundle paths.
	scripts map[string]string
	origin  string

	base     *plush.Template
	notFound *plush.Template
	edit     *plush.Template
	listing  *plush.Template

	registeredRoutes []string
}

type SiteOption func(*Site)

func WithLogger(logger *zap.Logger) SiteOption {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithScripts sets the bundles produced by javascript.CompileJSTarget.
func WithScripts(scripts map[string]string) SiteOption {
	return func(s *Site) { s.scripts = scripts }
}

// WithOrigin overrides the manifest origin used for canonical links.
func WithOrigin(origin string) SiteOption {
	return func(s *Site) {
		if origin != "" {
			s.origin = origin
		}
	}
}

func NewSite(catalog *sections.Catalog, manifest *config.SiteManifest, opts ...SiteOption) (*Site, error) {
	s := &Site{
		catalog:  catalog,
		manifest: manifest,
		logger:   zap.NewNop(),
		scripts:  map[string]string{},
		origin:   manifest.Origin,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	baseSource := ""
	if manifest.BaseLayout != "" {
		content, err := os.ReadFile(manifest.Resolve(manifest.BaseLayout))
		if err != nil {
			return nil, errors.Wrap(err, "read base layout")
		}
		baseSource = string(content)
	}
	if s.base, err = parseTemplate("base.plush.html", baseSource); err != nil {
		return nil, err
	}
	if s.notFound, err = parseTemplate("404.plush.html", ""); err != nil {
		return nil, err
	}
	if s.edit, err = parseTemplate("edit.plush.html", ""); err != nil {
		return nil, err
	}
	if s.listing, err = parseTemplate("catalog.plush.html", ""); err != nil {
		return nil, err
	}
	return s, nil
}

// parseTemplate parses source, or the embedded template called name when
// source is empty.
func parseTemplate(name, source string) (*plush.Template, error) {
	if source == "" {
		content, err := templatesFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		source = string(content)
	}
	tmpl, err := plush.Parse(source)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	return tmpl, nil
}

type layoutData struct {
	Title       string
	Description string
	Path        string
	Body        template.HTML
	Scripts     []string
}

func (s *Site) renderLayout(data layoutData) (string, error) {
	ctx := plush.NewContext()
	ctx.Set("title", data.Title)
	ctx.Set("description", data.Description)
	ctx.Set("canonical", s.canonical(data.Path))
	ctx.Set("currentPath", data.Path)
	ctx.Set("yield", data.Body)
	scripts := data.Scripts
	if scripts == nil {
		scripts = []string{}
	}
	ctx.Set("scripts", scripts)

	out, err := s.base.Exec(ctx)
	if err != nil {
		return "", errors.Wrap(err, "execute base layout")
	}
	return out, nil
}

func (s *Site) canonical(path string) string {
	if s.origin == "" {
		return ""
	}
	return strings.TrimSuffix(s.origin, "/") + path
}

// scriptsFor returns the bundle paths of the named targets, or every bundle
// when names is empty.
func (s *Site) scriptsFor(names []string) []string {
	out := []string{}
	if len(names) == 0 {
		for _, name := range sortedKeys(s.scripts) {
			out = append(out, s.scripts[name])
		}
		return out
	}
	for _, name := range names {
		if src, ok := s.scripts[name]; ok {
			out = append(out, src)
			continue
		}
		s.logger.Warn("page references unknown javascript target", zap.String("target", name))
	}
	return out
}

// Routes returns the page paths registered by SetupRouter.
func (s *Site) Routes() []string {
	return append([]string(nil), s.registeredRoutes...)
}

func (s *Site) Origin() string { return s.origin }

package sections

import (
	"embed"
	"html/template"
	"path"
	"strings"

	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

//go:embed templates
var templatesFS embed.FS

var ErrUnknownSection = errors.New("unknown section")

type kind struct {
	name  string
	types []string
	// required applies to every type unless overridden per type
	required []string
	perType  map[string][]string
}

func (k kind) requiredFor(typ string) []string {
	if r, ok := k.perType[typ]; ok {
		return r
	}
	return k.required
}

var kinds = []kind{
	{
		name:     "header",
		types:    []string{"header1", "header2", "header3", "ecomusHeader"},
		required: []string{"navigation"},
	},
	{
		name:     "footer",
		types:    []string{"footer1", "footer2", "footer3", "ecomusFooter"},
		required: []string{"sections"},
		perType:  map[string][]string{"ecomusFooter": {"footerLinks"}},
	},
	{
		name:     "hero",
		types:    []string{"hero1", "hero2", "hero3", "ecomusHero"},
		required: []string{"slides"},
	},
	{
		name:     "shop",
		types:    []string{"shop1", "shop2", "shop3"},
		required: []string{"products"},
		perType:  map[string][]string{"shop2": {"products", "categories"}},
	},
	{
		name:     "products",
		types:    []string{"products1", "products2", "products3", "ecomusProducts"},
		required: []string{"products"},
	},
	{
		name:     "layout",
		types:    []string{"layout1", "layout2", "layout3"},
		required: []string{"sections"},
	},
}

// Catalog holds the registry of every section kind.
type Catalog struct {
	resolver   *resolver.Resolver
	registries map[string]*resolver.Registry
	order      []string
}

func NewCatalog(opts ...resolver.Option) (*Catalog, error) {
	c := &Catalog{
		resolver:   resolver.New(opts...),
		registries: make(map[string]*resolver.Registry, len(kinds)),
	}
	for _, k := range kinds {
		reg, err := loadKind(k)
		if err != nil {
			return nil, err
		}
		c.registries[k.name] = reg
		c.order = append(c.order, k.name)
	}
	return c, nil
}

func loadKind(k kind) (*resolver.Registry, error) {
	raw, err := defaultsFS.ReadFile(path.Join("defaults", k.name+".yaml"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var tables map[string]interface{}
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return nil, errors.Wrapf(err, "parse %s defaults", k.name)
	}

	variants := make([]resolver.Variant, 0, len(k.types))
	for _, typ := range k.types {
		defaults, ok := resolver.Normalize(tables[typ]).(resolver.Config)
		if !ok {
			return nil, errors.Errorf("%s defaults: missing table for %s", k.name, typ)
		}
		name := path.Join("templates", k.name, typ+".plush.html")
		src, err := templatesFS.ReadFile(name)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		render, err := newRenderer(name, string(src))
		if err != nil {
			return nil, err
		}
		variants = append(variants, resolver.Variant{
			Type:     typ,
			Defaults: defaults,
			Required: k.requiredFor(typ),
			Render:   render,
		})
	}
	reg, err := resolver.NewRegistry(k.name, variants...)
	return reg, errors.WithStack(err)
}

func newRenderer(name, source string) (resolver.Renderer, error) {
	tmpl, err := plush.Parse(source)
	if err != nil {
		return nil, errors.Wrapf(err, "parse template %s", name)
	}
	return func(cfg resolver.Config) (template.HTML, error) {
		ctx := plush.NewContext()
		for k, h := range helpers {
			ctx.Set(k, h)
		}
		ctx.Set("cfg", cfg)
		out, err := tmpl.Exec(ctx)
		if err != nil {
			return "", errors.Wrapf(err, "render %s", name)
		}
		return template.HTML(out), nil
	}, nil
}

// Components returns the section kinds in catalog order.
func (c *Catalog) Components() []string {
	return append([]string(nil), c.order...)
}

// Registry looks a section kind up by name, ignoring case.
func (c *Catalog) Registry(component string) (*resolver.Registry, bool) {
	reg, ok := c.registries[strings.ToLower(strings.TrimSpace(component))]
	return reg, ok
}

func (c *Catalog) registry(component string) (*resolver.Registry, error) {
	reg, ok := c.Registry(component)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSection, "%q", component)
	}
	return reg, nil
}

// Resolve resolves one section instance. content is the {"<type>": {...}}
// map saved by the page builder; content that is not a mapping resolves to
// the defaults of the type and is flagged as malformed.
func (c *Catalog) Resolve(component, typ string, content interface{}) (resolver.Resolution, error) {
	reg, err := c.registry(component)
	if err != nil {
		return resolver.Resolution{}, err
	}
	return c.resolver.Resolve(reg, typ, content), nil
}

func (c *Catalog) Render(component, typ string, content interface{}) (template.HTML, error) {
	reg, err := c.registry(component)
	if err != nil {
		return "", err
	}
	out, _, err := c.resolver.Render(reg, typ, content)
	return out, err
}

// RenderPayload renders one saved edit-form payload.
func (c *Catalog) RenderPayload(p Payload) (template.HTML, error) {
	return c.Render(p.Component, p.Type, p.Content)
}

// RenderPage renders payloads in order. Payloads naming an unknown section
// are skipped; the skipped components are returned alongside the markup.
func (c *Catalog) RenderPage(payloads []Payload) (template.HTML, []string, error) {
	var b strings.Builder
	var skipped []string
	for _, p := range payloads {
		out, err := c.RenderPayload(p)
		if errors.Is(err, ErrUnknownSection) {
			skipped = append(skipped, p.Component)
			continue
		}
		if err != nil {
			return "", skipped, err
		}
		b.WriteString(string(out))
		b.WriteString("\n")
	}
	return template.HTML(b.String()), skipped, nil
}

// Variants maps every section kind to its types.
func (c *Catalog) Variants() map[string][]string {
	out := make(map[string][]string, len(c.registries))
	for name, reg := range c.registries {
		out[name] = reg.Types()
	}
	return out
}

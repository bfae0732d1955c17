package resolver

import (
	"html/template"

	"github.com/pkg/errors"
)

// Renderer turns a resolved config into markup.
type Renderer func(cfg Config) (template.HTML, error)

// Variant is one visual layout of a section kind.
type Variant struct {
	Type     string
	Defaults Config
	// Required lists dot separated paths of collections that must be non-empty
	// when Render is called.
	Required []string
	Render   Renderer
}

// Registry is the closed set of variants for one section kind.
// The first variant is the canonical default.
type Registry struct {
	section  string
	order    []string
	variants map[string]Variant
}

func NewRegistry(section string, variants ...Variant) (*Registry, error) {
	if len(variants) == 0 {
		return nil, errors.Errorf("section %q: no variants", section)
	}
	r := &Registry{
		section:  section,
		variants: make(map[string]Variant, len(variants)),
	}
	for _, v := range variants {
		if v.Type == "" {
			return nil, errors.Errorf("section %q: variant without type", section)
		}
		if _, dup := r.variants[v.Type]; dup {
			return nil, errors.Errorf("section %q: duplicate variant %q", section, v.Type)
		}
		for _, path := range v.Required {
			def, ok := Lookup(v.Defaults, path)
			if s, isSeq := isSeq(def); !ok || !isSeq || len(s) == 0 {
				return nil, errors.Errorf("section %q variant %q: default for required field %q must be a non-empty list", section, v.Type, path)
			}
		}
		r.variants[v.Type] = v
		r.order = append(r.order, v.Type)
	}
	return r, nil
}

func (r *Registry) Section() string { return r.section }

// Canonical is the type used when a requested type is not recognised.
func (r *Registry) Canonical() string { return r.order[0] }

// Types returns the variant identifiers in registration order.
func (r *Registry) Types() []string {
	return append([]string(nil), r.order...)
}

// Defaults returns a copy of the default config of typ.
func (r *Registry) Defaults(typ string) (Config, bool) {
	v, ok := r.variants[typ]
	if !ok {
		return nil, false
	}
	return Clone(v.Defaults), true
}

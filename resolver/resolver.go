package resolver

import (
	"html/template"

	"go.uber.org/zap"
)

// Resolution is the outcome of resolving one section instance.
type Resolution struct {
	Section string `json:"section"`
	// Requested is the type asked for by the caller, Type the one actually used.
	Requested  string   `json:"requested"`
	Type       string   `json:"type"`
	Config     Config   `json:"config"`
	FellBack   bool     `json:"fellBack,omitempty"`
	Backfilled []string `json:"backfilled,omitempty"`
	// Malformed is set when the content, or the override for Type inside it,
	// was present but not a mapping.
	Malformed bool `json:"malformed,omitempty"`
}

// Resolver merges caller content over a registry's defaults. It holds no
// state besides its logger and is safe for concurrent use.
type Resolver struct {
	logger *zap.Logger
}

type Option func(*Resolver)

// WithLogger sets the logger that receives fallback diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates typ, merges content[typ] over the variant defaults and
// backfills required collections. content is the decoded {"<type>": {...}}
// map; anything that is not a mapping is treated as absent. Resolve never
// fails: every bad input falls back to a default and is reported through the
// logger.
func (r *Resolver) Resolve(reg *Registry, typ string, content interface{}) Resolution {
	resolved, fellBack := ResolveType(typ, reg.order, reg.Canonical())
	if fellBack {
		r.logger.Warn("unknown section type, using default",
			zap.String("section", reg.section),
			zap.String("requested", typ),
			zap.String("fallback", resolved))
	}
	variant := reg.variants[resolved]

	res := Resolution{
		Section:   reg.section,
		Requested: typ,
		Type:      resolved,
		FellBack:  fellBack,
	}

	cm, ok := contentMap(content)
	if !ok {
		res.Malformed = true
		r.logger.Warn("section content is not a mapping, using defaults",
			zap.String("section", reg.section),
			zap.String("type", resolved))
	}

	// an invalid type never picks up the override namespaced under the default type
	var override interface{}
	if !fellBack {
		override = cm[resolved]
	}
	merged := Clone(variant.Defaults)
	if override != nil {
		if om, ok := isMap(override); ok {
			merged = Merge(variant.Defaults, om)
		} else {
			res.Malformed = true
			r.logger.Warn("section override is not a mapping, using defaults",
				zap.String("section", reg.section),
				zap.String("type", resolved))
		}
	}
	if merged == nil {
		merged = Config{}
	}

	cfg, filled := Backfill(merged, variant.Required, variant.Defaults)
	for _, path := range filled {
		r.logger.Warn("required field backfilled from defaults",
			zap.String("section", reg.section),
			zap.String("type", resolved),
			zap.String("field", path))
	}
	res.Config = cfg
	res.Backfilled = filled
	return res
}

// Render resolves and dispatches to the variant renderer.
func (r *Resolver) Render(reg *Registry, typ string, content interface{}) (template.HTML, Resolution, error) {
	res := r.Resolve(reg, typ, content)
	variant := reg.variants[res.Type]
	if variant.Render == nil {
		return "", res, nil
	}
	out, err := variant.Render(res.Config)
	return out, res, err
}

// contentMap accepts nil and any mapping, including YAML-decoded ones.
func contentMap(v interface{}) (Config, bool) {
	switch m := v.(type) {
	case nil:
		return nil, true
	case map[string]interface{}:
		return m, true
	}
	return isMap(v)
}

package sections

import (
	"encoding/json"
	"io"

	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/pkg/errors"
)

// Payload is what an edit form saves and what a page lists:
// {component, type, content: {[type]: {...fields}}}.
//
// Content is kept as decoded. A payload whose content is not a mapping still
// parses and renders its section with defaults.
type Payload struct {
	Component string      `json:"component" yaml:"component"`
	Type      string      `json:"type" yaml:"type"`
	Content   interface{} `json:"content,omitempty" yaml:"content,omitempty"`
}

// NewPayload namespaces cfg under typ.
func NewPayload(component, typ string, cfg resolver.Config) Payload {
	return Payload{
		Component: component,
		Type:      typ,
		Content:   resolver.Config{typ: cfg},
	}
}

// Override returns the fields saved for the payload's own type.
func (p Payload) Override() (resolver.Config, bool) {
	content, ok := resolver.Normalize(p.Content).(resolver.Config)
	if !ok {
		return nil, false
	}
	m, ok := resolver.Normalize(content[p.Type]).(resolver.Config)
	return m, ok
}

func ParsePayload(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, errors.Wrap(err, "decode section payload")
	}
	if p.Component == "" {
		return Payload{}, errors.New("section payload: component is required")
	}
	return p, nil
}

// ParsePayloads decodes a JSON array of payloads, as exported by the page builder.
func ParsePayloads(r io.Reader) ([]Payload, error) {
	var ps []Payload
	if err := json.NewDecoder(r).Decode(&ps); err != nil {
		return nil, errors.Wrap(err, "decode section payloads")
	}
	return ps, nil
}

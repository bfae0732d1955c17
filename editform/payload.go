package editform

import (
	"net/url"

	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/ZacxDev/storefront-sections/sections"
)

// Form is what an admin edit page needs to render one section variant.
type Form struct {
	Component string
	Type      string
	Types     []string
	Fields    []Field
}

// NewForm builds the form for the resolved config of a section instance.
func NewForm(res resolver.Resolution, types []string) Form {
	return Form{
		Component: res.Section,
		Type:      res.Type,
		Types:     types,
		Fields:    Fields(res.Config),
	}
}

// Groups splits the fields into runs sharing the same Group, preserving order.
func (f Form) Groups() [][]Field {
	var out [][]Field
	for i, field := range f.Fields {
		if i == 0 || field.Group != f.Fields[i-1].Group {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], field)
	}
	return out
}

// Payload decodes a submitted form into the save payload for component/typ.
func Payload(component, typ string, values url.Values, shape resolver.Config) sections.Payload {
	return sections.NewPayload(component, typ, Decode(values, shape))
}

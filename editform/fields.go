// Package editform turns section configs into admin form fields and turns
// submitted forms back into the section payload the page builder saves.
package editform

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/gobuffalo/flect"
)

type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
	KindMarkdown Kind = "markdown"
)

// keys holding rich text
var markdownKeys = map[string]bool{
	"body":        true,
	"description": true,
}

// Field is one editable leaf of a section config.
type Field struct {
	Path  string
	Label string
	Kind  Kind
	Value string
	// Group is the path of the enclosing sequence element, e.g. "navigation.0".
	Group string
}

// Fields flattens cfg into form fields ordered by path. Sequence elements
// are indexed ("navigation.0.label").
func Fields(cfg resolver.Config) []Field {
	var out []Field
	walk(&out, "", "", cfg)
	return out
}

func walk(out *[]Field, prefix, group string, v interface{}) {
	switch t := resolver.Normalize(v).(type) {
	case resolver.Config:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(out, join(prefix, k), group, t[k])
		}
	case []interface{}:
		for i, el := range t {
			p := join(prefix, strconv.Itoa(i))
			walk(out, p, p, el)
		}
	default:
		if prefix == "" {
			return
		}
		*out = append(*out, Field{
			Path:  prefix,
			Label: label(prefix),
			Kind:  kindOf(prefix, t),
			Value: formatValue(t),
			Group: group,
		})
	}
}

func kindOf(path string, v interface{}) Kind {
	switch v.(type) {
	case bool:
		return KindCheckbox
	case int, int64, float64, float32:
		return KindNumber
	}
	if markdownKeys[lastSegment(path)] {
		return KindMarkdown
	}
	return KindText
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	return ""
}

// label renders "brand.logoColor" as "Brand › Logo color" and
// "navigation.0.label" as "Navigation 1 › Label".
func label(path string) string {
	segs := strings.Split(path, ".")
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if n, err := strconv.Atoi(s); err == nil && len(parts) > 0 {
			parts[len(parts)-1] += " " + strconv.Itoa(n+1)
			continue
		}
		parts = append(parts, flect.Humanize(s))
	}
	return strings.Join(parts, " › ")
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Input is the kind as a plain string, for templates.
func (f Field) Input() string {
	return string(f.Kind)
}

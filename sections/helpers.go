package sections

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// Template helpers. Every lookup tolerates a missing path and yields the zero
// value, so templates never fail on absent optional fields.

var sanitizer = bluemonday.UGCPolicy()

var helpers = map[string]interface{}{
	"val":     val,
	"valOr":   valOr,
	"has":     has,
	"flag":    flag,
	"items":   items,
	"scalars": scalars,
	"first":   first,
	"money":   money,
	"md":      Markdown,
	"odd":     odd,
	"link":    link,
}

// schemes allowed in href and src attributes; relative URLs have none.
var linkSchemes = map[string]bool{
	"":       true,
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

func lookup(v interface{}, path string) (interface{}, bool) {
	m, ok := resolver.Normalize(v).(resolver.Config)
	if !ok {
		return nil, false
	}
	if path == "" {
		return m, true
	}
	return resolver.Lookup(m, path)
}

func format(x interface{}) string {
	switch t := x.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case resolver.Config, []interface{}:
		return ""
	}
	return fmt.Sprint(x)
}

func val(v interface{}, path string) string {
	x, _ := lookup(v, path)
	return format(x)
}

func valOr(v interface{}, path, fallback string) string {
	if s := val(v, path); s != "" {
		return s
	}
	return fallback
}

// link is val for href and src attributes: URLs with any other scheme
// (javascript:, data:, ...) or that do not parse yield "".
func link(v interface{}, path string) string {
	raw := strings.TrimSpace(val(v, path))
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || !linkSchemes[strings.ToLower(u.Scheme)] {
		return ""
	}
	return raw
}

func has(v interface{}, path string) bool {
	x, ok := lookup(v, path)
	if !ok {
		return false
	}
	switch t := x.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case resolver.Config:
		return len(t) > 0
	}
	return true
}

func flag(v interface{}, path string) bool {
	x, _ := lookup(v, path)
	switch t := x.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

func items(v interface{}, path string) []resolver.Config {
	x, _ := lookup(v, path)
	seq, _ := x.([]interface{})
	out := make([]resolver.Config, 0, len(seq))
	for _, el := range seq {
		if m, ok := el.(resolver.Config); ok {
			out = append(out, m)
		}
	}
	return out
}

func scalars(v interface{}, path string) []string {
	x, _ := lookup(v, path)
	seq, _ := x.([]interface{})
	out := make([]string, 0, len(seq))
	for _, el := range seq {
		if s := format(el); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func first(v interface{}, path string) resolver.Config {
	if all := items(v, path); len(all) > 0 {
		return all[0]
	}
	return resolver.Config{}
}

func money(v interface{}, path string) string {
	x, _ := lookup(v, path)
	switch t := x.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", t)
	case int:
		return fmt.Sprintf("$%d.00", t)
	case string:
		return t
	}
	return ""
}

func odd(i int) bool {
	return i%2 == 1
}

// Markdown renders rich text fields and strips anything unsafe.
func Markdown(s string) template.HTML {
	if s == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	out := markdown.ToHTML([]byte(s), p, nil)
	return template.HTML(sanitizer.SanitizeBytes(out))
}

package editform

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/ZacxDev/storefront-sections/resolver"
)

// Decode rebuilds a nested config from submitted form values. shape is the
// config the form was generated from; it decides how each value is typed.
// Keys starting with "_" are form metadata and are ignored. Sequence rows
// whose fields are all blank are dropped.
func Decode(values url.Values, shape resolver.Config) resolver.Config {
	root := resolver.Config{}
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "" || strings.HasPrefix(k, "_") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vs := values[key]
		if len(vs) == 0 {
			continue
		}
		// checkboxes post a hidden "false" followed by "true" when ticked
		raw := vs[len(vs)-1]
		set(root, strings.Split(key, "."), typed(key, raw, shape))
	}
	return compact(root).(resolver.Config)
}

func typed(path, raw string, shape resolver.Config) interface{} {
	ref, ok := resolver.Lookup(shape, path)
	if !ok {
		ref, ok = resolver.Lookup(shape, firstRow(path))
	}
	if !ok {
		return raw
	}
	switch ref.(type) {
	case bool:
		b, _ := strconv.ParseBool(raw)
		return b
	case int, int64:
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
		return raw
	case float64, float32:
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
		return raw
	}
	return raw
}

// firstRow maps "navigation.3.label" to "navigation.0.label" so rows added
// in the form are typed like the first default row.
func firstRow(path string) string {
	segs := strings.Split(path, ".")
	for i, s := range segs {
		if _, err := strconv.Atoi(s); err == nil {
			segs[i] = "0"
		}
	}
	return strings.Join(segs, ".")
}

func set(m resolver.Config, segs []string, v interface{}) {
	if len(segs) == 1 {
		m[segs[0]] = v
		return
	}
	child, ok := m[segs[0]].(resolver.Config)
	if !ok {
		child = resolver.Config{}
		m[segs[0]] = child
	}
	set(child, segs[1:], v)
}

// compact turns maps keyed only by indexes into sequences.
func compact(v interface{}) interface{} {
	m, ok := v.(resolver.Config)
	if !ok {
		return v
	}
	for k, val := range m {
		m[k] = compact(val)
	}
	if len(m) == 0 {
		return m
	}
	idx := make([]int, 0, len(m))
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return m
		}
		idx = append(idx, n)
	}
	sort.Ints(idx)
	seq := make([]interface{}, 0, len(idx))
	for _, n := range idx {
		el := m[strconv.Itoa(n)]
		if blank(el) {
			continue
		}
		seq = append(seq, el)
	}
	return seq
}

func blank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case resolver.Config:
		for _, el := range t {
			if !blank(el) {
				return false
			}
		}
		return true
	case []interface{}:
		for _, el := range t {
			if !blank(el) {
				return false
			}
		}
		return true
	}
	return false
}

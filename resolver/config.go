package resolver

import "strings"

// Config is a section configuration: nested string-keyed maps, sequences and scalars.
type Config = map[string]interface{}

func isMap(v interface{}) (Config, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, m != nil
	case map[interface{}]interface{}:
		return Normalize(m).(Config), true
	}
	return nil, false
}

func isSeq(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, s != nil
	case []map[string]interface{}:
		out := make([]interface{}, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// Normalize converts YAML-decoded values (map[interface{}]interface{}) into
// Config values so that they can be merged with JSON-decoded content.
func Normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(Config, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = Normalize(val)
		}
		return out
	case map[string]interface{}:
		out := make(Config, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	}
	return v
}

// Clone returns a deep copy of c.
func Clone(c Config) Config {
	if c == nil {
		return nil
	}
	return cloneValue(c).(Config)
}

func cloneValue(v interface{}) interface{} {
	if m, ok := isMap(v); ok {
		out := make(Config, len(m))
		for k, val := range m {
			out[k] = cloneValue(val)
		}
		return out
	}
	if s, ok := isSeq(v); ok {
		out := make([]interface{}, len(s))
		for i, val := range s {
			out[i] = cloneValue(val)
		}
		return out
	}
	return v
}

// Lookup walks a dot separated path ("brand.name", "slides.0.title").
// Numeric segments index into sequences.
func Lookup(c Config, path string) (interface{}, bool) {
	var cur interface{} = c
	for _, seg := range splitPath(path) {
		if m, ok := isMap(cur); ok {
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = v
			continue
		}
		if s, ok := isSeq(cur); ok {
			i, ok := index(seg)
			if !ok || i >= len(s) {
				return nil, false
			}
			cur = s[i]
			continue
		}
		return nil, false
	}
	return cur, true
}

// withPath returns a copy of c where the value at path is v. Maps along the
// path are copied, c itself is left untouched.
func withPath(c Config, segs []string, v interface{}) Config {
	out := make(Config, len(c)+1)
	for k, val := range c {
		out[k] = val
	}
	if len(segs) == 1 {
		out[segs[0]] = v
		return out
	}
	child, _ := isMap(c[segs[0]])
	out[segs[0]] = withPath(child, segs[1:], v)
	return out
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func index(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	n := 0
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

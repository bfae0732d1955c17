package resolver

// Merge deep-merges source over target and returns a new Config.
//
// Nested maps merge key by key. Scalars, sequences and nil values in source
// replace the target value outright, so sequences are never concatenated.
// A map in source only merges into a map: over a present non-map value
// (including nil) the target value is kept. Keys only present in target are
// kept. Neither argument is modified.
func Merge(target, source Config) Config {
	out := make(Config, len(target)+len(source))
	for k, v := range target {
		out[k] = cloneValue(v)
	}
	for k, v := range source {
		sm, ok := isMap(v)
		if !ok {
			out[k] = cloneValue(v)
			continue
		}
		tv, present := target[k]
		if !present {
			out[k] = cloneValue(sm)
			continue
		}
		out[k] = MergeValue(tv, sm)
	}
	return out
}

// MergeValue merges arbitrary decoded values. Merging only happens when both
// sides are maps; otherwise a copy of target is returned unchanged.
func MergeValue(target, source interface{}) interface{} {
	tm, tok := isMap(target)
	sm, sok := isMap(source)
	if !tok || !sok {
		return cloneValue(target)
	}
	return Merge(tm, sm)
}

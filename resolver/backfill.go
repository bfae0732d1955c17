package resolver

// Backfill replaces every required collection field that is absent, not a
// sequence, or an empty sequence in merged with a copy of the value found at
// the same path in defaults. Only fields whose default is a sequence are
// considered, so empty maps and scalars are left alone.
//
// It returns the resulting config and the paths that were backfilled.
// merged is not modified.
func Backfill(merged Config, required []string, defaults Config) (Config, []string) {
	out := merged
	var filled []string
	for _, path := range required {
		if v, ok := Lookup(out, path); ok {
			if s, ok := isSeq(v); ok && len(s) > 0 {
				continue
			}
		}
		def, ok := Lookup(defaults, path)
		if _, isList := isSeq(def); !ok || !isList {
			continue
		}
		out = withPath(out, splitPath(path), cloneValue(def))
		filled = append(filled, path)
	}
	if out == nil {
		out = Config{}
	}
	return out, filled
}

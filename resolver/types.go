package resolver

// ResolveType returns requested when it is one of valid, and canonical otherwise.
// The second result reports whether the fallback was taken.
func ResolveType(requested string, valid []string, canonical string) (string, bool) {
	for _, t := range valid {
		if t == requested {
			return requested, false
		}
	}
	return canonical, true
}

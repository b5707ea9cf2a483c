package collect

import "sort"

// Set is an unordered collection of repository-relative paths.
type Set map[string]struct{}

// NewSet returns an empty Set.
func NewSet() Set { return make(Set) }

// Add inserts a path.
func (s Set) Add(path string) { s[path] = struct{}{} }

// Has reports membership.
func (s Set) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Union adds every member of other.
func (s Set) Union(other Set) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

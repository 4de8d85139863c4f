package query

import (
	"sort"
	"strings"

	"github.com/VoxDroid/cookme/internal/nameutil"
)

// NameSet is a set of canonical ingredient names. The zero value is empty
// and ready to use for reads.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet canonicalises names and collects them into a set. Blank names
// are skipped.
func NewNameSet(names ...string) NameSet {
	s := NameSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts the canonical form of name. Blank names are ignored.
func (s *NameSet) Add(name string) {
	c := nameutil.Capitalize(name)
	if c == "" {
		return
	}
	if s.names == nil {
		s.names = make(map[string]struct{})
	}
	s.names[c] = struct{}{}
}

// Len returns the number of distinct names.
func (s NameSet) Len() int { return len(s.names) }

// Empty reports whether the set has no names.
func (s NameSet) Empty() bool { return len(s.names) == 0 }

// Has reports whether the canonical form of name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s.names[nameutil.Capitalize(name)]
	return ok
}

// Names returns the names in ascending order.
func (s NameSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// String renders the set the way a user would type it.
func (s NameSet) String() string {
	return strings.Join(s.Names(), ", ")
}

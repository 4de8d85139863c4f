package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// FuzzyMatch returns true if query fuzzy-matches target.
// Matching is case-insensitive and succeeds on substring match or if
// the query characters appear as a subsequence in the target.
func FuzzyMatch(target, query string) bool {
	if query == "" {
		return true
	}
	t := strings.ToLower(target)
	q := strings.ToLower(query)
	if strings.Contains(t, q) {
		return true
	}
	// subsequence match (rune-aware)
	qr := []rune(q)
	i := 0
	for _, ch := range t {
		if i < len(qr) && qr[i] == ch {
			i++
			if i >= len(qr) {
				return true
			}
		}
	}
	return false
}

// SuggestIngredients returns up to limit catalog names close to name, best
// match first. Catalog names contained in name ("Lemons" for "Lemon") come
// after the ranked subsequence matches. It backs "did you mean" hints for
// unknown search terms and plays no part in matching.
func (r *Repository) SuggestIngredients(ctx context.Context, name string, limit int) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" || limit <= 0 {
		return nil, nil
	}
	all, err := r.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(all))
	for i, ing := range all {
		names[i] = ing.Name
	}

	matches := fuzzy.Find(name, names)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})
	var out []string
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
		seen[m.Index] = true
	}
	for i, n := range names {
		if !seen[i] && FuzzyMatch(name, n) {
			out = append(out, n)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

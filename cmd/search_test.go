package cmd

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/VoxDroid/cookme/internal/search"
)

func slugsOf(t *testing.T, out string) []string {
	t.Helper()
	var res search.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("unmarshal result: %v\n%s", err, out)
	}
	slugs := make([]string, 0, len(res.Recipes))
	for _, rc := range res.Recipes {
		slugs = append(slugs, rc.Slug)
	}
	return slugs
}

func TestSearchDemoCatalog(t *testing.T) {
	setupCLI(t)
	mustRun(t, "populate", "--demo")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"superset default", []string{"search", "--json", "lemon,", "sugar"}, []string{"lemonade"}},
		{"superset single", []string{"search", "--json", "butter"}, []string{"french-toast", "baked-apple", "buttered-rice"}},
		{"subset", []string{"search", "--json", "--mode", "subset", "lemon, sugar, apple, butter"}, []string{"baked-apple", "lemonade"}},
		{"encoded subset", []string{"search", "--json", "--mode", "subset", "--encoded", "white-bread egg milk sugar butter"}, []string{"french-toast"}},
		{"unknown ingredient", []string{"search", "--json", "fairy dust"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugsOf(t, mustRun(t, tt.args...))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchTextOutput(t *testing.T) {
	setupCLI(t)
	mustRun(t, "populate", "--demo")

	out := mustRun(t, "search", "lemn")
	if !strings.Contains(out, `unknown ingredient "Lemn"`) || !strings.Contains(out, "Lemon") {
		t.Fatalf("expected a suggestion for the misspelling, got:\n%s", out)
	}
	if !strings.Contains(out, "no recipes found") {
		t.Fatalf("expected empty result, got:\n%s", out)
	}

	out = mustRun(t, "search", "lemon")
	if !strings.Contains(out, "Lemon Chicken") || !strings.Contains(out, "Lemonade") || !strings.Contains(out, "Total: 2 recipes") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	setupCLI(t)

	if _, err := runCLI(t, "", "search", "--mode", "exact", "lemon"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, err := runCLI(t, "", "search", "  "); err == nil {
		t.Fatalf("expected error for blank query")
	}
	t.Setenv("COOKME_SEARCH_MAX_QUERY_LENGTH", "5")
	if _, err := runCLI(t, "", "search", "lemon, sugar"); err == nil {
		t.Fatalf("expected error for an over-long query")
	}
	if _, err := runCLI(t, "", "search", "--fridge", "nobody", "lemon"); err == nil {
		t.Fatalf("expected error for a missing fridge")
	}
}

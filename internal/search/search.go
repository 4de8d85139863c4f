// Package search ties query parsing, name resolution and recipe matching
// together for the CLI and the HTTP API.
package search

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/logging"
	"github.com/VoxDroid/cookme/internal/matcher"
	"github.com/VoxDroid/cookme/internal/metrics"
	"github.com/VoxDroid/cookme/internal/query"
)

const maxSuggestions = 3

// Request is one search. Fridge, when set, restricts candidates to the
// recipes linked to that fridge.
type Request struct {
	Names  query.NameSet
	Policy matcher.Policy
	Fridge *catalog.Fridge
}

// Result is the outcome of a search.
type Result struct {
	Query       string              `json:"query"`
	Encoded     string              `json:"encoded"`
	Names       []string            `json:"names"`
	Policy      matcher.Policy      `json:"mode"`
	Scope       string              `json:"scope"`
	Unknown     []string            `json:"unknown,omitempty"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
	Count       int                 `json:"count"`
	Recipes     []catalog.Recipe    `json:"recipes"`
}

// Service runs searches against one database.
type Service struct {
	repo   *catalog.Repository
	engine *matcher.Engine
}

// NewService returns a Service over db.
func NewService(db *sql.DB) *Service {
	return &Service{repo: catalog.NewRepository(db), engine: matcher.New(db)}
}

// Search matches req.Names under req.Policy. Names unknown to the catalog
// are reported with spelling suggestions but never fail the search.
func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	policy := req.Policy
	if policy == "" {
		policy = matcher.DefaultPolicy
	}
	scope := matcher.Global()
	scopeName := "global"
	if req.Fridge != nil {
		scope = matcher.InFridge(req.Fridge.ID)
		scopeName = "fridge"
	}

	names := req.Names.Names()
	decoded := strings.Join(names, ",")
	res := &Result{
		Query:   decoded,
		Encoded: query.Encode(decoded),
		Names:   names,
		Policy:  policy,
		Scope:   scopeName,
	}
	if req.Fridge != nil {
		res.Scope = "fridge:" + req.Fridge.Owner
	}

	resolution, err := s.repo.ResolveNames(ctx, req.Names)
	if err != nil {
		return nil, err
	}
	res.Unknown = resolution.Unknown
	metrics.RecordUnknownIngredients(len(resolution.Unknown))
	for _, n := range resolution.Unknown {
		hints, err := s.repo.SuggestIngredients(ctx, n, maxSuggestions)
		if err != nil {
			return nil, err
		}
		if len(hints) > 0 {
			if res.Suggestions == nil {
				res.Suggestions = make(map[string][]string)
			}
			res.Suggestions[n] = hints
		}
	}

	start := time.Now()
	recipes, err := s.engine.Match(ctx, policy, req.Names, scope)
	metrics.RecordMatch(string(policy), scopeName, len(recipes), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AttachIngredients(ctx, recipes); err != nil {
		return nil, err
	}
	res.Recipes = recipes
	res.Count = len(recipes)

	logging.Ctx(ctx).Debug().
		Str("mode", string(policy)).
		Str("scope", res.Scope).
		Strs("names", names).
		Int("results", res.Count).
		Dur("took", time.Since(start)).
		Msg("search finished")
	return res, nil
}

// Possibilities returns every catalog recipe that can be cooked using only
// what is in the fridge.
func (s *Service) Possibilities(ctx context.Context, fridge catalog.Fridge) (*Result, error) {
	names, err := s.repo.FridgeIngredientNames(ctx, fridge.ID)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, Request{Names: names, Policy: matcher.PolicySubset})
}

// Cookable returns the fridge's own linked recipes that can be cooked using
// only what is in the fridge.
func (s *Service) Cookable(ctx context.Context, fridge catalog.Fridge) (*Result, error) {
	names, err := s.repo.FridgeIngredientNames(ctx, fridge.ID)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, Request{Names: names, Policy: matcher.PolicySubset, Fridge: &fridge})
}

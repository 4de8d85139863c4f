package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/matcher"
	"github.com/VoxDroid/cookme/internal/query"
	"github.com/VoxDroid/cookme/internal/search"
	"github.com/VoxDroid/cookme/internal/validation"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]string{"status": "ok"})
}

// searchRecipes handles GET /api/v1/search?q=<encoded>&mode=&fridge=.
func (s *Server) searchRecipes(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := validation.SearchRequest{
		Query:  params.Get("q"),
		Mode:   params.Get("mode"),
		Fridge: params.Get("fridge"),
	}
	if verr := validation.ValidateSearch(req, s.opts.MaxQueryLength); verr != nil {
		respondFailure(w, r, verr)
		return
	}
	policy, err := matcher.ParsePolicy(req.Mode)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	sreq := search.Request{Names: query.Parse(req.Query), Policy: policy}
	if req.Fridge != "" {
		f, err := s.visibleFridge(r.Context(), req.Fridge)
		if err != nil {
			respondFailure(w, r, err)
			return
		}
		sreq.Fridge = &f
	}
	res, err := s.search.Search(r.Context(), sreq)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, res)
}

// encodeQuery handles GET /api/v1/search/encode?query=<raw> and returns the
// encoded form together with the search URL that uses it.
func (s *Server) encodeQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("query")
	if verr := validation.ValidateSearch(validation.SearchRequest{Query: raw}, s.opts.MaxQueryLength); verr != nil {
		respondFailure(w, r, verr)
		return
	}
	encoded := query.Encode(raw)
	respondOK(w, map[string]string{
		"encoded":  encoded,
		"location": "/api/v1/search?q=" + url.QueryEscape(encoded),
	})
}

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.repo.ListRecipes(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, recipes)
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	rc, err := s.repo.GetRecipeBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, rc)
}

func (s *Server) listIngredients(w http.ResponseWriter, r *http.Request) {
	ings, err := s.repo.ListIngredients(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if ings == nil {
		ings = []catalog.Ingredient{}
	}
	respondOK(w, ings)
}

type fridgeView struct {
	catalog.Fridge
	Ingredients []catalog.FridgeIngredient `json:"ingredients"`
	Recipes     []catalog.Recipe           `json:"recipes"`
}

func (s *Server) getFridge(w http.ResponseWriter, r *http.Request) {
	f, err := s.visibleFridge(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	items, err := s.repo.ListFridgeIngredients(r.Context(), f.ID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if items == nil {
		items = []catalog.FridgeIngredient{}
	}
	recipes, err := s.repo.ListFridgeRecipes(r.Context(), f.ID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, fridgeView{Fridge: f, Ingredients: items, Recipes: recipes})
}

func (s *Server) fridgePossibilities(w http.ResponseWriter, r *http.Request) {
	f, err := s.visibleFridge(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	res, err := s.search.Possibilities(r.Context(), f)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, res)
}

func (s *Server) fridgeRecipes(w http.ResponseWriter, r *http.Request) {
	f, err := s.visibleFridge(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	res, err := s.search.Cookable(r.Context(), f)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, res)
}

// visibleFridge looks a fridge up without creating it. Hidden fridges are
// reported as missing.
func (s *Server) visibleFridge(ctx context.Context, owner string) (catalog.Fridge, error) {
	f, err := s.repo.GetFridge(ctx, owner)
	if err != nil {
		return catalog.Fridge{}, err
	}
	if !f.Visible {
		return catalog.Fridge{}, fmt.Errorf("fridge of %q: %w", owner, catalog.ErrNotFound)
	}
	return f, nil
}

// Package api serves the read-only HTTP interface of cookme.
package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/config"
	"github.com/VoxDroid/cookme/internal/search"
)

// Options configures a Server.
type Options struct {
	// MaxQueryLength bounds the q parameter of /search.
	MaxQueryLength int
	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit int
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	repo   *catalog.Repository
	search *search.Service
	opts   Options
}

// NewServer returns a Server reading from db.
func NewServer(db *sql.DB, opts Options) *Server {
	if opts.MaxQueryLength <= 0 {
		opts.MaxQueryLength = config.DefaultMaxQueryLength
	}
	return &Server{
		repo:   catalog.NewRepository(db),
		search: search.NewService(db),
		opts:   opts,
	}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(instrument())

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit(s.opts.RateLimit))

		r.Get("/search", s.searchRecipes)
		r.Get("/search/encode", s.encodeQuery)

		r.Get("/recipes", s.listRecipes)
		r.Get("/recipes/{slug}", s.getRecipe)
		r.Get("/ingredients", s.listIngredients)

		r.Route("/fridges/{owner}", func(r chi.Router) {
			r.Get("/", s.getFridge)
			r.Get("/possibilities", s.fridgePossibilities)
			r.Get("/recipes", s.fridgeRecipes)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "no such endpoint", nil)
	})
	return r
}

// Package api implements the botlane REST API: recommendations, roster and
// matchup lookups, and saved drafts.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/botlane/botlane/internal/cache"
	"github.com/botlane/botlane/internal/drafts"
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
	"github.com/botlane/botlane/pkg/scoring"
)

// Handler is the top-level API handler.
type Handler struct {
	roster  *champion.Roster
	repo    *matchup.Repository
	bottom  *scoring.Engine
	support *scoring.Engine
	drafts  *drafts.Service
	cache   *cache.Rankings
	logger  *slog.Logger
}

// HandlerDeps is the dependency list for the API handler.
type HandlerDeps struct {
	Roster  *champion.Roster
	Repo    *matchup.Repository
	Weights scoring.Weights
	Drafts  *drafts.Service
	Cache   *cache.Rankings // nil: a default in-memory cache
	Logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(deps *HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rankings := deps.Cache
	if rankings == nil {
		rankings = cache.NewRankings(&cache.RankingsDeps{Roster: deps.Roster, Logger: logger})
	}
	return &Handler{
		roster:  deps.Roster,
		repo:    deps.Repo,
		bottom:  scoring.NewBottomEngine(deps.Repo, deps.Roster, deps.Weights),
		support: scoring.NewSupportEngine(deps.Repo, deps.Roster, deps.Weights),
		drafts:  deps.Drafts,
		cache:   rankings,
		logger:  logger,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux. Draft
// writes go through auth; an empty apiKey disables it.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, apiKey string) {
	auth := APIKeyAuth(apiKey)

	// Write endpoints (auth-protected)
	mux.Handle("POST /api/drafts", auth(http.HandlerFunc(h.handleCreateDraft)))
	mux.Handle("PATCH /api/drafts/{id}", auth(http.HandlerFunc(h.handleUpdateDraft)))
	mux.Handle("DELETE /api/drafts/{id}", auth(http.HandlerFunc(h.handleDeleteDraft)))

	// Read endpoints
	mux.HandleFunc("GET /api/drafts", h.handleListDrafts)
	mux.HandleFunc("GET /api/drafts/{id}", h.handleGetDraft)
	mux.HandleFunc("GET /api/champions", h.handleListChampions)
	mux.HandleFunc("GET /api/matchups/{name}", h.handleMatchups)
	mux.HandleFunc("GET /api/recommendations/bottom", h.handleRecommendBottom)
	mux.HandleFunc("GET /api/recommendations/support", h.handleRecommendSupport)
}

// Routes returns the full API with middleware applied.
func (h *Handler) Routes(apiKey string) http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, apiKey)
	return RequestLogger(h.logger)(CORS(mux))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

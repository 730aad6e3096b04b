package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/botlane/botlane/internal/cache"
	"github.com/botlane/botlane/pkg/scoring"
)

func (h *Handler) handleRecommendBottom(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.recommend(w, r, h.bottom, scoring.Query{
		Ally:         q.Get("allySupport"),
		EnemySupport: q.Get("enemySupport"),
		EnemyBottom:  q.Get("enemyBottom"),
		Threat:       q.Get("threat"),
	})
}

func (h *Handler) handleRecommendSupport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.recommend(w, r, h.support, scoring.Query{
		Ally:         q.Get("allyAdc"),
		EnemySupport: q.Get("enemySupport"),
		EnemyBottom:  q.Get("enemyBottom"),
		Threat:       q.Get("threat"),
	})
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, engine *scoring.Engine, query scoring.Query) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sel, err := engine.Resolve(query)
	if err != nil {
		var selErr *scoring.SelectionError
		if errors.As(err, &selErr) {
			writeError(w, http.StatusBadRequest, selErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to resolve selection")
		return
	}

	key := cache.Key(engine.Role(), h.repo.Version, sel)
	ranking := h.cache.GetOrCompute(r.Context(), key, func() *scoring.Ranking {
		return engine.Rank(sel)
	})

	writeJSON(w, http.StatusOK, ranking.Top(limit))
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}

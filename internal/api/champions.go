package api

import (
	"net/http"

	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
)

type championListResponse struct {
	Role      string               `json:"role,omitempty"`
	Champions []*champion.Champion `json:"champions"`
}

func (h *Handler) handleListChampions(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	list, err := h.roster.ByRole(role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, championListResponse{Role: role, Champions: list})
}

type matchupResponse struct {
	Champion *champion.Champion      `json:"champion"`
	Patch    string                  `json:"patch,omitempty"`
	Version  string                  `json:"version,omitempty"`
	Bottom   *matchup.BottomProfile  `json:"bottom"`
	Support  *matchup.SupportProfile `json:"support"`
}

func (h *Handler) handleMatchups(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	c, ok := h.roster.Find(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Champion not found")
		return
	}

	resp := matchupResponse{
		Champion: c,
		Patch:    h.repo.Patch,
		Version:  h.repo.Version,
	}
	if p, ok := h.repo.BottomProfile(c.Name); ok {
		resp.Bottom = p
	}
	if p, ok := h.repo.SupportProfile(c.Name); ok {
		resp.Support = p
	}
	writeJSON(w, http.StatusOK, resp)
}

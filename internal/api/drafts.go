package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/botlane/botlane/internal/drafts"
)

const draftNotFound = "Draft not found"

func (h *Handler) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	list, err := h.drafts.List(r.Context())
	if err != nil {
		h.logger.Error("list drafts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch drafts")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	d, ok, err := h.drafts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("get draft", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch draft")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, draftNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var in drafts.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.drafts.Create(r.Context(), in)
	if err != nil {
		h.writeDraftError(w, "create draft", err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var p drafts.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, ok, err := h.drafts.Update(r.Context(), id, p)
	if err != nil {
		h.writeDraftError(w, "update draft", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, draftNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ok, err := h.drafts.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete draft", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete draft")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, draftNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Draft deleted successfully"})
}

// writeDraftError maps validation failures to 400 and everything else to 500.
func (h *Handler) writeDraftError(w http.ResponseWriter, op string, err error) {
	var verr *drafts.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	h.logger.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to save draft")
}

package api

import (
	"net/http"

	"bouncer/internal/domain"
)

type featureRequest struct {
	Name string `json:"name"`
}

type listFeaturesResponse struct {
	Features      []featureJSON `json:"features"`
	Total         int64         `json:"total"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

func (h *Handler) handleCreateFeature(w http.ResponseWriter, r *http.Request) {
	var req featureRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	f, err := h.features.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, featureToAPI(*f))
}

func (h *Handler) handleGetFeature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	f, err := h.features.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, featureToAPI(*f))
}

func (h *Handler) handleUpdateFeature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req featureRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	f, err := h.features.Update(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, featureToAPI(*f))
}

func (h *Handler) handleDeleteFeature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.features.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	features, total, err := h.features.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listFeaturesResponse{
		Features:      featuresToAPI(features),
		Total:         total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

package api

import (
	"net/http"

	"bouncer/internal/domain"
)

type bundleRequest struct {
	Name string `json:"name"`
}

type listBundlesResponse struct {
	Bundles       []bundleJSON `json:"bundles"`
	Total         int64        `json:"total"`
	NextPageToken string       `json:"next_page_token,omitempty"`
}

func (h *Handler) handleCreateBundle(w http.ResponseWriter, r *http.Request) {
	var req bundleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.bundles.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bundleToAPI(*b))
}

func (h *Handler) handleGetBundle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := h.bundles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundleToAPI(*b))
}

func (h *Handler) handleUpdateBundle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req bundleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.bundles.Update(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundleToAPI(*b))
}

func (h *Handler) handleDeleteBundle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.bundles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListBundles(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	bundles, total, err := h.bundles.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBundlesResponse{
		Bundles:       bundlesToAPI(bundles),
		Total:         total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *Handler) handleListBundleFeatures(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	features, err := h.bundles.ListFeatures(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"features": featuresToAPI(features)})
}

func (h *Handler) handleAttachBundleFeature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	featureID, err := idParam(r, "featureID")
	if err != nil {
		writeError(w, err)
		return
	}
	link, err := h.bundles.AttachFeature(r.Context(), id, featureID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         link.ID,
		"bundle_id":  link.BundleID,
		"feature_id": link.FeatureID,
	})
}

func (h *Handler) handleDetachBundleFeature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	featureID, err := idParam(r, "featureID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.bundles.DetachFeature(r.Context(), id, featureID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

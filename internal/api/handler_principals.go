package api

import (
	"net/http"

	"bouncer/internal/domain"
)

type principalRequest struct {
	ExternalID string `json:"external_id"`
}

type listPrincipalsResponse struct {
	Principals    []principalJSON `json:"principals"`
	Total         int64           `json:"total"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

func (h *Handler) handleCreatePrincipal(w http.ResponseWriter, r *http.Request) {
	var req principalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.principals.Create(r.Context(), req.ExternalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, principalToAPI(*p))
}

func (h *Handler) handleGetPrincipal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.principals.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, principalToAPI(*p))
}

func (h *Handler) handleUpdatePrincipal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req principalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.principals.Update(r.Context(), id, req.ExternalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, principalToAPI(*p))
}

func (h *Handler) handleDeletePrincipal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.principals.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListPrincipals(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	principals, total, err := h.principals.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listPrincipalsResponse{
		Principals:    principalsToAPI(principals),
		Total:         total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *Handler) handleListPrincipalLicenses(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	licenses, err := h.principals.ListLicenses(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"licenses": licensesToAPI(licenses)})
}

func (h *Handler) handleAssignLicense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	licenseID, err := idParam(r, "licenseID")
	if err != nil {
		writeError(w, err)
		return
	}
	link, err := h.principals.AssignLicense(r.Context(), id, licenseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":           link.ID,
		"principal_id": link.PrincipalID,
		"license_id":   link.LicenseID,
	})
}

func (h *Handler) handleUnassignLicense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	licenseID, err := idParam(r, "licenseID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.principals.UnassignLicense(r.Context(), id, licenseID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleResolveEntitlements(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	features, err := h.entitlements.Resolve(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Debug("entitlements resolved", "principal_id", id, "features", len(features))
	writeJSON(w, http.StatusOK, map[string]interface{}{"features": featuresToAPI(features)})
}

package api

import (
	"net/http"
	"time"

	"bouncer/internal/domain"
	"bouncer/internal/service/licensing"
)

type createLicenseRequest struct {
	ClientKey  string     `json:"client_key"`
	PrivateKey string     `json:"private_key"`
	Assignee   string     `json:"assignee"`
	Expiration *time.Time `json:"expiration,omitempty"`
}

type setLicenseStatusRequest struct {
	Status string `json:"status"`
}

type listLicensesResponse struct {
	Licenses      []licenseJSON `json:"licenses"`
	Total         int64         `json:"total"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

func (h *Handler) handleCreateLicense(w http.ResponseWriter, r *http.Request) {
	var req createLicenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	l, err := h.licenses.Create(r.Context(), licensing.CreateLicenseRequest{
		ClientKey:  req.ClientKey,
		PrivateKey: req.PrivateKey,
		Assignee:   req.Assignee,
		Expiration: req.Expiration,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("license issued", "license_id", l.ID, "assignee", l.Assignee)
	// The private key is echoed back on create only.
	writeJSON(w, http.StatusCreated, licenseWithSecretToAPI(*l))
}

func (h *Handler) handleGetLicense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := h.licenses.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, licenseToAPI(*l))
}

func (h *Handler) handleUpdateLicense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req createLicenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	l, err := h.licenses.Update(r.Context(), id, domain.LicenseUpdate{
		ClientKey:  req.ClientKey,
		PrivateKey: req.PrivateKey,
		Assignee:   req.Assignee,
		Expiration: req.Expiration,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, licenseToAPI(*l))
}

func (h *Handler) handleDeleteLicense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.licenses.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListLicenses(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	licenses, total, err := h.licenses.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listLicensesResponse{
		Licenses:      licensesToAPI(licenses),
		Total:         total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *Handler) handleSetLicenseStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req setLicenseStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	status, err := domain.ParseLicenseStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := h.licenses.SetStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, licenseToAPI(*l))
}

func (h *Handler) handleListLicenseFeatures(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	features, err := h.licenses.ListFeatures(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"features": featuresToAPI(features)})
}

func (h *Handler) handleAttachLicenseFeature(w http.ResponseWriter, r *http.Request) {
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
	link, err := h.licenses.AttachFeature(r.Context(), id, featureID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         link.ID,
		"license_id": link.LicenseID,
		"feature_id": link.FeatureID,
	})
}

func (h *Handler) handleDetachLicenseFeature(w http.ResponseWriter, r *http.Request) {
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
	if err := h.licenses.DetachFeature(r.Context(), id, featureID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

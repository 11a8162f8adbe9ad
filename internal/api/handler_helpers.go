package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bouncer/internal/domain"
)

// errorBody is the JSON error envelope for all non-2xx responses.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	body := errorBody{Code: status, Message: err.Error()}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		body.Field = conflict.Field
	}
	if status == http.StatusInternalServerError {
		// Engine internals stay out of responses.
		body.Message = "internal error"
	}
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}

// idParam parses a chi URL parameter as an entity id.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid %s", name)
	}
	return id, nil
}

// pageFromQuery extracts a PageRequest from max_results/page_token params.
func pageFromQuery(r *http.Request) domain.PageRequest {
	p := domain.PageRequest{PageToken: r.URL.Query().Get("page_token")}
	if v := r.URL.Query().Get("max_results"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.MaxResults = n
		}
	}
	return p
}

// === Wire representations ===

type principalJSON struct {
	ID         int64      `json:"id"`
	ExternalID string     `json:"external_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func principalToAPI(p domain.Principal) principalJSON {
	return principalJSON{ID: p.ID, ExternalID: p.ExternalID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func principalsToAPI(ps []domain.Principal) []principalJSON {
	out := make([]principalJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, principalToAPI(p))
	}
	return out
}

type bundleJSON struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func bundleToAPI(b domain.Bundle) bundleJSON {
	return bundleJSON{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

func bundlesToAPI(bs []domain.Bundle) []bundleJSON {
	out := make([]bundleJSON, 0, len(bs))
	for _, b := range bs {
		out = append(out, bundleToAPI(b))
	}
	return out
}

type featureJSON struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func featureToAPI(f domain.Feature) featureJSON {
	return featureJSON{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt}
}

func featuresToAPI(fs []domain.Feature) []featureJSON {
	out := make([]featureJSON, 0, len(fs))
	for _, f := range fs {
		out = append(out, featureToAPI(f))
	}
	return out
}

type licenseJSON struct {
	ID         int64      `json:"id"`
	ClientKey  string     `json:"client_key"`
	Assignee   string     `json:"assignee"`
	Expiration *time.Time `json:"expiration,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// licenseToAPI omits the private key from responses; it is returned once, on
// create, via licenseWithSecretToAPI.
func licenseToAPI(l domain.License) licenseJSON {
	return licenseJSON{
		ID:         l.ID,
		ClientKey:  l.ClientKey,
		Assignee:   l.Assignee,
		Expiration: l.Expiration,
		Status:     l.Status.String(),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func licensesToAPI(ls []domain.License) []licenseJSON {
	out := make([]licenseJSON, 0, len(ls))
	for _, l := range ls {
		out = append(out, licenseToAPI(l))
	}
	return out
}

type licenseWithSecretJSON struct {
	licenseJSON
	PrivateKey string `json:"private_key"`
}

func licenseWithSecretToAPI(l domain.License) licenseWithSecretJSON {
	return licenseWithSecretJSON{licenseJSON: licenseToAPI(l), PrivateKey: l.PrivateKey}
}

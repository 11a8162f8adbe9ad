// Package api exposes the entitlement store over HTTP. Handlers are thin:
// they decode requests, call the service layer, and translate domain errors
// to status codes. No business rules live here.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bouncer/internal/service/licensing"
)

// Handler serves the entitlement store HTTP API.
type Handler struct {
	principals   *licensing.PrincipalService
	bundles      *licensing.BundleService
	features     *licensing.FeatureService
	licenses     *licensing.LicenseService
	entitlements *licensing.EntitlementService
	logger       *slog.Logger
}

// NewHandler creates a Handler wired to the given services.
func NewHandler(
	principals *licensing.PrincipalService,
	bundles *licensing.BundleService,
	features *licensing.FeatureService,
	licenses *licensing.LicenseService,
	entitlements *licensing.EntitlementService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		principals:   principals,
		bundles:      bundles,
		features:     features,
		licenses:     licenses,
		entitlements: entitlements,
		logger:       logger,
	}
}

// Routes mounts all API routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/principals", func(r chi.Router) {
			r.Post("/", h.handleCreatePrincipal)
			r.Get("/", h.handleListPrincipals)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetPrincipal)
				r.Put("/", h.handleUpdatePrincipal)
				r.Delete("/", h.handleDeletePrincipal)
				r.Get("/licenses", h.handleListPrincipalLicenses)
				r.Put("/licenses/{licenseID}", h.handleAssignLicense)
				r.Delete("/licenses/{licenseID}", h.handleUnassignLicense)
				r.Get("/entitlements", h.handleResolveEntitlements)
			})
		})

		r.Route("/bundles", func(r chi.Router) {
			r.Post("/", h.handleCreateBundle)
			r.Get("/", h.handleListBundles)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetBundle)
				r.Put("/", h.handleUpdateBundle)
				r.Delete("/", h.handleDeleteBundle)
				r.Get("/features", h.handleListBundleFeatures)
				r.Put("/features/{featureID}", h.handleAttachBundleFeature)
				r.Delete("/features/{featureID}", h.handleDetachBundleFeature)
			})
		})

		r.Route("/features", func(r chi.Router) {
			r.Post("/", h.handleCreateFeature)
			r.Get("/", h.handleListFeatures)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetFeature)
				r.Put("/", h.handleUpdateFeature)
				r.Delete("/", h.handleDeleteFeature)
			})
		})

		r.Route("/licenses", func(r chi.Router) {
			r.Post("/", h.handleCreateLicense)
			r.Get("/", h.handleListLicenses)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetLicense)
				r.Put("/", h.handleUpdateLicense)
				r.Delete("/", h.handleDeleteLicense)
				r.Post("/status", h.handleSetLicenseStatus)
				r.Get("/features", h.handleListLicenseFeatures)
				r.Put("/features/{featureID}", h.handleAttachLicenseFeature)
				r.Delete("/features/{featureID}", h.handleDetachLicenseFeature)
			})
		})
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

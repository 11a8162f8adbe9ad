// Package app provides application-level wiring: repositories over the
// database pools, services over the repositories.
package app

import (
	"database/sql"
	"log/slog"

	"bouncer/internal/config"
	"bouncer/internal/db/repository"
	"bouncer/internal/service/licensing"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Principal   *licensing.PrincipalService
	Bundle      *licensing.BundleService
	Feature     *licensing.FeatureService
	License     *licensing.LicenseService
	Entitlement *licensing.EntitlementService
}

// App holds the fully-wired application.
type App struct {
	Services Services
}

// New wires all repositories and services from the provided deps. Mutating
// repositories run on the single-writer pool; the entitlement resolver and
// the principal lookup backing it use the read pool.
func New(deps Deps) *App {
	principalRepo := repository.NewPrincipalRepo(deps.WriteDB)
	bundleRepo := repository.NewBundleRepo(deps.WriteDB)
	featureRepo := repository.NewFeatureRepo(deps.WriteDB)
	licenseRepo := repository.NewLicenseRepo(deps.WriteDB)
	bundleFeatureRepo := repository.NewBundleFeatureRepo(deps.WriteDB)
	licenseFeatureRepo := repository.NewLicenseFeatureRepo(deps.WriteDB)
	principalLicenseRepo := repository.NewPrincipalLicenseRepo(deps.WriteDB)

	readPrincipalRepo := repository.NewPrincipalRepo(deps.ReadDB)
	entitlementRepo := repository.NewEntitlementRepo(deps.ReadDB)

	return &App{
		Services: Services{
			Principal:   licensing.NewPrincipalService(principalRepo, principalLicenseRepo),
			Bundle:      licensing.NewBundleService(bundleRepo, bundleFeatureRepo),
			Feature:     licensing.NewFeatureService(featureRepo),
			License:     licensing.NewLicenseService(licenseRepo, licenseFeatureRepo),
			Entitlement: licensing.NewEntitlementService(readPrincipalRepo, entitlementRepo),
		},
	}
}

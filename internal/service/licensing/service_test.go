package licensing

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	internaldb "bouncer/internal/db"
	"bouncer/internal/db/repository"
)

// services wires the full service layer over a migrated test store.
type services struct {
	Principal   *PrincipalService
	Bundle      *BundleService
	Feature     *FeatureService
	License     *LicenseService
	Entitlement *EntitlementService
}

func setupServices(t *testing.T) services {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestSQLite(t)

	principalRepo := repository.NewPrincipalRepo(writeDB)
	return services{
		Principal:   NewPrincipalService(principalRepo, repository.NewPrincipalLicenseRepo(writeDB)),
		Bundle:      NewBundleService(repository.NewBundleRepo(writeDB), repository.NewBundleFeatureRepo(writeDB)),
		Feature:     NewFeatureService(repository.NewFeatureRepo(writeDB)),
		License:     NewLicenseService(repository.NewLicenseRepo(writeDB), repository.NewLicenseFeatureRepo(writeDB)),
		Entitlement: NewEntitlementService(repository.NewPrincipalRepo(readDB), repository.NewEntitlementRepo(readDB)),
	}
}

// mustLicense issues an Active license for tests that only need one to exist.
func mustLicense(t *testing.T, svc *LicenseService, clientKey string) int64 {
	t.Helper()
	l, err := svc.Create(context.Background(), CreateLicenseRequest{
		ClientKey:  clientKey,
		PrivateKey: "private-" + clientKey,
		Assignee:   "acme",
	})
	require.NoError(t, err)
	return l.ID
}

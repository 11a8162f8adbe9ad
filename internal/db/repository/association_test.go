package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncer/internal/domain"
)

// fixtures creates one principal, bundle, feature, and license for junction
// tests.
type fixtures struct {
	principal *domain.Principal
	bundle    *domain.Bundle
	feature   *domain.Feature
	license   *domain.License
}

func setupFixtures(t *testing.T, dbc *sql.DB) fixtures {
	t.Helper()
	ctx := context.Background()

	p, err := NewPrincipalRepo(dbc).Create(ctx, &domain.Principal{ExternalID: "user-1"})
	require.NoError(t, err)
	b, err := NewBundleRepo(dbc).Create(ctx, &domain.Bundle{Name: "starter"})
	require.NoError(t, err)
	f, err := NewFeatureRepo(dbc).Create(ctx, &domain.Feature{Name: "export"})
	require.NoError(t, err)
	l, err := NewLicenseRepo(dbc).Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)

	return fixtures{principal: p, bundle: b, feature: f, license: l}
}

func TestBundleFeatureRepo_LinkUnlink(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	repo := NewBundleFeatureRepo(dbc)
	ctx := context.Background()

	link, err := repo.Link(ctx, fx.bundle.ID, fx.feature.ID)
	require.NoError(t, err)
	assert.NotZero(t, link.ID)
	assert.Equal(t, fx.bundle.ID, link.BundleID)
	assert.Equal(t, fx.feature.ID, link.FeatureID)

	features, err := repo.ListFeatures(ctx, fx.bundle.ID)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "export", features[0].Name)

	require.NoError(t, repo.Unlink(ctx, fx.bundle.ID, fx.feature.ID))
	features, err = repo.ListFeatures(ctx, fx.bundle.ID)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestBundleFeatureRepo_DoubleLinkConflict(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	repo := NewBundleFeatureRepo(dbc)
	ctx := context.Background()

	_, err := repo.Link(ctx, fx.bundle.ID, fx.feature.ID)
	require.NoError(t, err)

	_, err = repo.Link(ctx, fx.bundle.ID, fx.feature.ID)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	// Unlink then relink succeeds.
	require.NoError(t, repo.Unlink(ctx, fx.bundle.ID, fx.feature.ID))
	_, err = repo.Link(ctx, fx.bundle.ID, fx.feature.ID)
	require.NoError(t, err)
}

func TestBundleFeatureRepo_UnknownEndpoints(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	repo := NewBundleFeatureRepo(dbc)
	ctx := context.Background()

	var invalidRef *domain.InvalidReferenceError
	_, err := repo.Link(ctx, 999, fx.feature.ID)
	require.ErrorAs(t, err, &invalidRef)
	_, err = repo.Link(ctx, fx.bundle.ID, 999)
	require.ErrorAs(t, err, &invalidRef)
}

func TestBundleFeatureRepo_UnlinkAbsentIsNoop(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	repo := NewBundleFeatureRepo(dbc)

	require.NoError(t, repo.Unlink(context.Background(), fx.bundle.ID, fx.feature.ID))
}

func TestLicenseFeatureRepo_LinkUnlink(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	repo := NewLicenseFeatureRepo(dbc)
	ctx := context.Background()

	link, err := repo.Link(ctx, fx.license.ID, fx.feature.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.license.ID, link.LicenseID)
	assert.Equal(t, fx.feature.ID, link.FeatureID)

	_, err = repo.Link(ctx, fx.license.ID, fx.feature.ID)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	features, err := repo.ListFeatures(ctx, fx.license.ID)
	require.NoError(t, err)
	require.Len(t, features, 1)

	require.NoError(t, repo.Unlink(ctx, fx.license.ID, fx.feature.ID))
	require.NoError(t, repo.Unlink(ctx, fx.license.ID, fx.feature.ID))
}

func TestPrincipalLicenseRepo_LinkUnlink(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	repo := NewPrincipalLicenseRepo(dbc)
	ctx := context.Background()

	link, err := repo.Link(ctx, fx.principal.ID, fx.license.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.principal.ID, link.PrincipalID)
	assert.Equal(t, fx.license.ID, link.LicenseID)

	_, err = repo.Link(ctx, fx.principal.ID, fx.license.ID)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	licenses, err := repo.ListLicenses(ctx, fx.principal.ID)
	require.NoError(t, err)
	require.Len(t, licenses, 1)
	assert.Equal(t, "ck-1", licenses[0].ClientKey)

	require.NoError(t, repo.Unlink(ctx, fx.principal.ID, fx.license.ID))
	licenses, err = repo.ListLicenses(ctx, fx.principal.ID)
	require.NoError(t, err)
	assert.Empty(t, licenses)
}

func TestPrincipalLicenseRepo_UnknownEndpoints(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	repo := NewPrincipalLicenseRepo(dbc)
	ctx := context.Background()

	var invalidRef *domain.InvalidReferenceError
	_, err := repo.Link(ctx, 999, fx.license.ID)
	require.ErrorAs(t, err, &invalidRef)
	_, err = repo.Link(ctx, fx.principal.ID, 999)
	require.ErrorAs(t, err, &invalidRef)
}

func TestFeatureRepo_Delete_CascadesJunctions(t *testing.T) {
	dbc := setupDB(t)
	fx := setupFixtures(t, dbc)
	ctx := context.Background()

	_, err := NewBundleFeatureRepo(dbc).Link(ctx, fx.bundle.ID, fx.feature.ID)
	require.NoError(t, err)
	_, err = NewLicenseFeatureRepo(dbc).Link(ctx, fx.license.ID, fx.feature.ID)
	require.NoError(t, err)

	require.NoError(t, NewFeatureRepo(dbc).Delete(ctx, fx.feature.ID))

	var count int
	require.NoError(t, dbc.QueryRow(`SELECT COUNT(*) FROM bundle_features`).Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, dbc.QueryRow(`SELECT COUNT(*) FROM license_features`).Scan(&count))
	assert.Zero(t, count)

	// The bundle and license themselves survive.
	_, err = NewBundleRepo(dbc).GetByID(ctx, fx.bundle.ID)
	require.NoError(t, err)
	_, err = NewLicenseRepo(dbc).GetByID(ctx, fx.license.ID)
	require.NoError(t, err)
}

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncer/internal/domain"
)

func featureNames(fs []domain.Feature) []string {
	names := make([]string, 0, len(fs))
	for _, f := range fs {
		names = append(names, f.Name)
	}
	return names
}

func grantFeature(t *testing.T, dbc *sql.DB, licenseID, featureID int64) {
	t.Helper()
	_, err := NewLicenseFeatureRepo(dbc).Link(context.Background(), licenseID, featureID)
	require.NoError(t, err)
}

func TestEntitlementRepo_ResolvesThroughActiveLicenses(t *testing.T) {
	dbc := setupDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p, err := NewPrincipalRepo(dbc).Create(ctx, &domain.Principal{ExternalID: "user-1"})
	require.NoError(t, err)

	features := NewFeatureRepo(dbc)
	fa, err := features.Create(ctx, &domain.Feature{Name: "alpha"})
	require.NoError(t, err)
	fb, err := features.Create(ctx, &domain.Feature{Name: "beta"})
	require.NoError(t, err)

	licenses := NewLicenseRepo(dbc)
	l1, err := licenses.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)
	l2, err := licenses.Create(ctx, &domain.License{
		ClientKey: "ck-2", PrivateKey: "pk-2", Assignee: "acme",
	})
	require.NoError(t, err)

	grantFeature(t, dbc, l1.ID, fa.ID)
	grantFeature(t, dbc, l1.ID, fb.ID)
	grantFeature(t, dbc, l2.ID, fa.ID) // alpha again, must deduplicate

	holdings := NewPrincipalLicenseRepo(dbc)
	_, err = holdings.Link(ctx, p.ID, l1.ID)
	require.NoError(t, err)
	_, err = holdings.Link(ctx, p.ID, l2.ID)
	require.NoError(t, err)

	resolver := NewEntitlementRepo(dbc)
	got, err := resolver.FeaturesForPrincipal(ctx, p.ID, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, featureNames(got))

	// Revoking the broad license shrinks the set to what l2 still grants.
	_, err = licenses.SetStatus(ctx, l1.ID, domain.LicenseStatusRevoked)
	require.NoError(t, err)
	got, err = resolver.FeaturesForPrincipal(ctx, p.ID, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, featureNames(got))

	// Revoking the second license empties it.
	_, err = licenses.SetStatus(ctx, l2.ID, domain.LicenseStatusRevoked)
	require.NoError(t, err)
	got, err = resolver.FeaturesForPrincipal(ctx, p.ID, now)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntitlementRepo_IgnoresExpiredLicenses(t *testing.T) {
	dbc := setupDB(t)
	ctx := context.Background()

	p, err := NewPrincipalRepo(dbc).Create(ctx, &domain.Principal{ExternalID: "user-1"})
	require.NoError(t, err)
	f, err := NewFeatureRepo(dbc).Create(ctx, &domain.Feature{Name: "export"})
	require.NoError(t, err)

	exp := time.Now().UTC().Add(time.Hour)
	l, err := NewLicenseRepo(dbc).Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme", Expiration: &exp,
	})
	require.NoError(t, err)
	grantFeature(t, dbc, l.ID, f.ID)
	_, err = NewPrincipalLicenseRepo(dbc).Link(ctx, p.ID, l.ID)
	require.NoError(t, err)

	resolver := NewEntitlementRepo(dbc)

	// Before expiration the feature is held.
	got, err := resolver.FeaturesForPrincipal(ctx, p.ID, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, got, 1)

	// Evaluated after the expiration instant, it is not. No sweep ran; the
	// clock alone decides.
	got, err = resolver.FeaturesForPrincipal(ctx, p.ID, exp.Add(time.Second))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntitlementRepo_UnlinkRemovesEntitlement(t *testing.T) {
	dbc := setupDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p, err := NewPrincipalRepo(dbc).Create(ctx, &domain.Principal{ExternalID: "user-1"})
	require.NoError(t, err)
	f, err := NewFeatureRepo(dbc).Create(ctx, &domain.Feature{Name: "export"})
	require.NoError(t, err)
	l, err := NewLicenseRepo(dbc).Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)
	grantFeature(t, dbc, l.ID, f.ID)

	holdings := NewPrincipalLicenseRepo(dbc)
	_, err = holdings.Link(ctx, p.ID, l.ID)
	require.NoError(t, err)

	resolver := NewEntitlementRepo(dbc)
	got, err := resolver.FeaturesForPrincipal(ctx, p.ID, now)
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, holdings.Unlink(ctx, p.ID, l.ID))
	got, err = resolver.FeaturesForPrincipal(ctx, p.ID, now)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntitlementRepo_BundlesHaveNoEffect(t *testing.T) {
	dbc := setupDB(t)
	ctx := context.Background()

	p, err := NewPrincipalRepo(dbc).Create(ctx, &domain.Principal{ExternalID: "user-1"})
	require.NoError(t, err)
	f, err := NewFeatureRepo(dbc).Create(ctx, &domain.Feature{Name: "export"})
	require.NoError(t, err)
	b, err := NewBundleRepo(dbc).Create(ctx, &domain.Bundle{Name: "starter"})
	require.NoError(t, err)
	_, err = NewBundleFeatureRepo(dbc).Link(ctx, b.ID, f.ID)
	require.NoError(t, err)

	// Grouping a feature into a bundle grants nothing by itself.
	got, err := NewEntitlementRepo(dbc).FeaturesForPrincipal(ctx, p.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, got)
}

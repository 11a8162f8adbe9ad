package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncer/internal/domain"
)

func TestLicenseRepo_Create_DefaultsActive(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	l, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)
	assert.NotZero(t, l.ID)
	assert.Equal(t, domain.LicenseStatusActive, l.Status)
	assert.Nil(t, l.Expiration)
}

func TestLicenseRepo_Create_DuplicateKeys(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)

	var conflict *domain.ConflictError

	_, err = repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-other", Assignee: "acme",
	})
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "client_key", conflict.Field)

	_, err = repo.Create(ctx, &domain.License{
		ClientKey: "ck-other", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "private_key", conflict.Field)
}

func TestLicenseRepo_GetByClientKey(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)

	got, err := repo.GetByClientKey(ctx, "ck-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	var notFound *domain.NotFoundError
	_, err = repo.GetByClientKey(ctx, "missing")
	require.ErrorAs(t, err, &notFound)
}

func TestLicenseRepo_Update(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	l, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)

	exp := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	updated, err := repo.Update(ctx, l.ID, domain.LicenseUpdate{
		ClientKey: "ck-2", PrivateKey: "pk-2", Assignee: "globex", Expiration: &exp,
	})
	require.NoError(t, err)
	assert.Equal(t, "ck-2", updated.ClientKey)
	assert.Equal(t, "globex", updated.Assignee)
	require.NotNil(t, updated.Expiration)
	assert.True(t, updated.Expiration.Equal(exp))
	require.NotNil(t, updated.UpdatedAt)
}

func TestLicenseRepo_Update_KeyCollision(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)
	other, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-2", PrivateKey: "pk-2", Assignee: "acme",
	})
	require.NoError(t, err)

	_, err = repo.Update(ctx, other.ID, domain.LicenseUpdate{
		ClientKey: "ck-1", PrivateKey: "pk-2", Assignee: "acme",
	})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "client_key", conflict.Field)
}

func TestLicenseRepo_SetStatus_Revoke(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	l, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)

	revoked, err := repo.SetStatus(ctx, l.ID, domain.LicenseStatusRevoked)
	require.NoError(t, err)
	assert.Equal(t, domain.LicenseStatusRevoked, revoked.Status)
	require.NotNil(t, revoked.UpdatedAt)
}

func TestLicenseRepo_SetStatus_TerminalIsFinal(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	l, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)
	_, err = repo.SetStatus(ctx, l.ID, domain.LicenseStatusRevoked)
	require.NoError(t, err)

	var validation *domain.ValidationError
	_, err = repo.SetStatus(ctx, l.ID, domain.LicenseStatusExpired)
	require.ErrorAs(t, err, &validation)

	// Still revoked.
	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LicenseStatusRevoked, got.Status)
}

func TestLicenseRepo_SetStatus_InvalidTargets(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	l, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)

	var validation *domain.ValidationError
	_, err = repo.SetStatus(ctx, l.ID, domain.LicenseStatusActive)
	require.ErrorAs(t, err, &validation)
	_, err = repo.SetStatus(ctx, l.ID, domain.LicenseStatus(9))
	require.ErrorAs(t, err, &validation)
}

func TestLicenseRepo_SetStatus_NotFound(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))

	var notFound *domain.NotFoundError
	_, err := repo.SetStatus(context.Background(), 42, domain.LicenseStatusRevoked)
	require.ErrorAs(t, err, &notFound)
}

func TestLicenseRepo_ExpirationIsLazy(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour)
	l, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme", Expiration: &past,
	})
	require.NoError(t, err)

	// Reads surface Expired even though the stored row still says Active.
	assert.Equal(t, domain.LicenseStatusExpired, l.Status)

	var stored int
	require.NoError(t, repo.db.QueryRow(
		`SELECT status FROM licenses WHERE id = ?`, l.ID).Scan(&stored))
	assert.Equal(t, int(domain.LicenseStatusActive), stored)

	// A lapsed license is no longer transitionable.
	var validation *domain.ValidationError
	_, err = repo.SetStatus(ctx, l.ID, domain.LicenseStatusRevoked)
	require.ErrorAs(t, err, &validation)
}

func TestLicenseRepo_Delete_CascadesGrantsAndAssignments(t *testing.T) {
	dbc := setupDB(t)
	licenses := NewLicenseRepo(dbc)
	features := NewFeatureRepo(dbc)
	principals := NewPrincipalRepo(dbc)
	granted := NewLicenseFeatureRepo(dbc)
	holdings := NewPrincipalLicenseRepo(dbc)
	ctx := context.Background()

	l, err := licenses.Create(ctx, &domain.License{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)
	f, err := features.Create(ctx, &domain.Feature{Name: "export"})
	require.NoError(t, err)
	p, err := principals.Create(ctx, &domain.Principal{ExternalID: "holder"})
	require.NoError(t, err)
	_, err = granted.Link(ctx, l.ID, f.ID)
	require.NoError(t, err)
	_, err = holdings.Link(ctx, p.ID, l.ID)
	require.NoError(t, err)

	require.NoError(t, licenses.Delete(ctx, l.ID))

	var count int
	require.NoError(t, dbc.QueryRow(`SELECT COUNT(*) FROM license_features`).Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, dbc.QueryRow(`SELECT COUNT(*) FROM principal_licenses`).Scan(&count))
	assert.Zero(t, count)

	// Feature and principal survive.
	_, err = features.GetByID(ctx, f.ID)
	require.NoError(t, err)
	_, err = principals.GetByID(ctx, p.ID)
	require.NoError(t, err)
}

func TestLicenseRepo_List_AppliesEffectiveStatus(t *testing.T) {
	repo := NewLicenseRepo(setupDB(t))
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Minute)
	_, err := repo.Create(ctx, &domain.License{
		ClientKey: "ck-live", PrivateKey: "pk-live", Assignee: "acme",
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.License{
		ClientKey: "ck-lapsed", PrivateKey: "pk-lapsed", Assignee: "acme", Expiration: &past,
	})
	require.NoError(t, err)

	licenses, total, err := repo.List(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, licenses, 2)
	assert.Equal(t, domain.LicenseStatusActive, licenses[0].Status)
	assert.Equal(t, domain.LicenseStatusExpired, licenses[1].Status)
}

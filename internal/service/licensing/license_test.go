package licensing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncer/internal/domain"
)

func TestCreateLicenseRequest_Validate(t *testing.T) {
	valid := CreateLicenseRequest{ClientKey: "ck", PrivateKey: "pk", Assignee: "acme"}
	require.NoError(t, valid.Validate())

	var validation *domain.ValidationError

	missingClient := valid
	missingClient.ClientKey = " "
	require.ErrorAs(t, missingClient.Validate(), &validation)

	missingPrivate := valid
	missingPrivate.PrivateKey = ""
	require.ErrorAs(t, missingPrivate.Validate(), &validation)

	missingAssignee := valid
	missingAssignee.Assignee = ""
	require.ErrorAs(t, missingAssignee.Validate(), &validation)
}

func TestLicenseService_CreateAndRevoke(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	l, err := svc.License.Create(ctx, CreateLicenseRequest{
		ClientKey: "ck-1", PrivateKey: "pk-1", Assignee: "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LicenseStatusActive, l.Status)

	revoked, err := svc.License.Revoke(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LicenseStatusRevoked, revoked.Status)

	// Revoking twice fails: the state is terminal.
	var validation *domain.ValidationError
	_, err = svc.License.Revoke(ctx, l.ID)
	require.ErrorAs(t, err, &validation)
}

func TestLicenseService_Update_Validation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	id := mustLicense(t, svc.License, "ck-1")

	var validation *domain.ValidationError
	_, err := svc.License.Update(ctx, id, domain.LicenseUpdate{
		ClientKey: "", PrivateKey: "pk", Assignee: "acme",
	})
	require.ErrorAs(t, err, &validation)
}

func TestLicenseService_FeatureGrants(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	licenseID := mustLicense(t, svc.License, "ck-1")
	f, err := svc.Feature.Create(ctx, "export")
	require.NoError(t, err)

	_, err = svc.License.AttachFeature(ctx, licenseID, f.ID)
	require.NoError(t, err)

	features, err := svc.License.ListFeatures(ctx, licenseID)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "export", features[0].Name)

	require.NoError(t, svc.License.DetachFeature(ctx, licenseID, f.ID))
	features, err = svc.License.ListFeatures(ctx, licenseID)
	require.NoError(t, err)
	assert.Empty(t, features)

	var notFound *domain.NotFoundError
	_, err = svc.License.ListFeatures(ctx, 999)
	require.ErrorAs(t, err, &notFound)
}

func TestBundleService_Validation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	var validation *domain.ValidationError
	_, err := svc.Bundle.Create(ctx, " ")
	require.ErrorAs(t, err, &validation)

	b, err := svc.Bundle.Create(ctx, "starter")
	require.NoError(t, err)
	_, err = svc.Bundle.Update(ctx, b.ID, "")
	require.ErrorAs(t, err, &validation)

	var notFound *domain.NotFoundError
	_, err = svc.Bundle.ListFeatures(ctx, 999)
	require.ErrorAs(t, err, &notFound)
}

func TestFeatureService_Validation(t *testing.T) {
	svc := setupServices(t)

	var validation *domain.ValidationError
	_, err := svc.Feature.Create(context.Background(), "")
	require.ErrorAs(t, err, &validation)
}

package licensing

import (
	"context"
	"strings"
	"time"

	"bouncer/internal/domain"
)

// CreateLicenseRequest holds parameters for issuing a new license.
type CreateLicenseRequest struct {
	ClientKey  string
	PrivateKey string
	Assignee   string
	Expiration *time.Time
}

// Validate checks that the request is well-formed.
func (r *CreateLicenseRequest) Validate() error {
	if strings.TrimSpace(r.ClientKey) == "" {
		return domain.ErrValidation("client key is required")
	}
	if strings.TrimSpace(r.PrivateKey) == "" {
		return domain.ErrValidation("private key is required")
	}
	if strings.TrimSpace(r.Assignee) == "" {
		return domain.ErrValidation("assignee is required")
	}
	return nil
}

// LicenseService provides license management operations.
type LicenseService struct {
	repo    domain.LicenseRepository
	granted domain.LicenseFeatureRepository
}

// NewLicenseService creates a new LicenseService.
func NewLicenseService(repo domain.LicenseRepository, granted domain.LicenseFeatureRepository) *LicenseService {
	return &LicenseService{repo: repo, granted: granted}
}

// Create validates and persists a new license in Active status.
func (s *LicenseService) Create(ctx context.Context, req CreateLicenseRequest) (*domain.License, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &domain.License{
		ClientKey:  req.ClientKey,
		PrivateKey: req.PrivateKey,
		Assignee:   req.Assignee,
		Expiration: req.Expiration,
		Status:     domain.LicenseStatusActive,
	})
}

// GetByID returns a license by id.
func (s *LicenseService) GetByID(ctx context.Context, id int64) (*domain.License, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByClientKey returns a license by its client key.
func (s *LicenseService) GetByClientKey(ctx context.Context, clientKey string) (*domain.License, error) {
	return s.repo.GetByClientKey(ctx, clientKey)
}

// Update rewrites a license's mutable fields.
func (s *LicenseService) Update(ctx context.Context, id int64, upd domain.LicenseUpdate) (*domain.License, error) {
	if strings.TrimSpace(upd.ClientKey) == "" {
		return nil, domain.ErrValidation("client key is required")
	}
	if strings.TrimSpace(upd.PrivateKey) == "" {
		return nil, domain.ErrValidation("private key is required")
	}
	if strings.TrimSpace(upd.Assignee) == "" {
		return nil, domain.ErrValidation("assignee is required")
	}
	return s.repo.Update(ctx, id, upd)
}

// SetStatus applies a lifecycle transition. Active licenses may move to
// Revoked or Expired; both are terminal.
func (s *LicenseService) SetStatus(ctx context.Context, id int64, status domain.LicenseStatus) (*domain.License, error) {
	return s.repo.SetStatus(ctx, id, status)
}

// Revoke is shorthand for the Active → Revoked transition.
func (s *LicenseService) Revoke(ctx context.Context, id int64) (*domain.License, error) {
	return s.repo.SetStatus(ctx, id, domain.LicenseStatusRevoked)
}

// Delete removes a license together with its feature grants and assignments.
func (s *LicenseService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns a page of licenses ordered by id.
func (s *LicenseService) List(ctx context.Context, page domain.PageRequest) ([]domain.License, int64, error) {
	return s.repo.List(ctx, page)
}

// AttachFeature adds a feature to the license's grant set.
func (s *LicenseService) AttachFeature(ctx context.Context, licenseID, featureID int64) (*domain.LicenseFeature, error) {
	return s.granted.Link(ctx, licenseID, featureID)
}

// DetachFeature removes a feature from the license's grant set. Detaching an
// absent pair is a no-op.
func (s *LicenseService) DetachFeature(ctx context.Context, licenseID, featureID int64) error {
	return s.granted.Unlink(ctx, licenseID, featureID)
}

// ListFeatures returns the license's features. The license must exist.
func (s *LicenseService) ListFeatures(ctx context.Context, licenseID int64) ([]domain.Feature, error) {
	if _, err := s.repo.GetByID(ctx, licenseID); err != nil {
		return nil, err
	}
	return s.granted.ListFeatures(ctx, licenseID)
}

package licensing

import (
	"context"
	"strings"

	"bouncer/internal/domain"
)

// BundleService provides bundle management operations. Bundles group features
// for cataloguing; they do not grant entitlements.
type BundleService struct {
	repo    domain.BundleRepository
	grouped domain.BundleFeatureRepository
}

// NewBundleService creates a new BundleService.
func NewBundleService(repo domain.BundleRepository, grouped domain.BundleFeatureRepository) *BundleService {
	return &BundleService{repo: repo, grouped: grouped}
}

// Create validates and persists a new bundle.
func (s *BundleService) Create(ctx context.Context, name string) (*domain.Bundle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation("bundle name is required")
	}
	return s.repo.Create(ctx, &domain.Bundle{Name: name})
}

// GetByID returns a bundle by id.
func (s *BundleService) GetByID(ctx context.Context, id int64) (*domain.Bundle, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName returns a bundle by name.
func (s *BundleService) GetByName(ctx context.Context, name string) (*domain.Bundle, error) {
	return s.repo.GetByName(ctx, name)
}

// Update renames a bundle.
func (s *BundleService) Update(ctx context.Context, id int64, name string) (*domain.Bundle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation("bundle name is required")
	}
	return s.repo.Update(ctx, id, name)
}

// Delete removes a bundle together with its feature groupings.
func (s *BundleService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns a page of bundles ordered by id.
func (s *BundleService) List(ctx context.Context, page domain.PageRequest) ([]domain.Bundle, int64, error) {
	return s.repo.List(ctx, page)
}

// AttachFeature adds a feature to the bundle's grouping.
func (s *BundleService) AttachFeature(ctx context.Context, bundleID, featureID int64) (*domain.BundleFeature, error) {
	return s.grouped.Link(ctx, bundleID, featureID)
}

// DetachFeature removes a feature from the bundle's grouping. Detaching an
// absent pair is a no-op.
func (s *BundleService) DetachFeature(ctx context.Context, bundleID, featureID int64) error {
	return s.grouped.Unlink(ctx, bundleID, featureID)
}

// ListFeatures returns the bundle's features. The bundle must exist.
func (s *BundleService) ListFeatures(ctx context.Context, bundleID int64) ([]domain.Feature, error) {
	if _, err := s.repo.GetByID(ctx, bundleID); err != nil {
		return nil, err
	}
	return s.grouped.ListFeatures(ctx, bundleID)
}

package licensing

import (
	"context"
	"strings"

	"bouncer/internal/domain"
)

// FeatureService provides feature management operations.
type FeatureService struct {
	repo domain.FeatureRepository
}

// NewFeatureService creates a new FeatureService.
func NewFeatureService(repo domain.FeatureRepository) *FeatureService {
	return &FeatureService{repo: repo}
}

// Create validates and persists a new feature.
func (s *FeatureService) Create(ctx context.Context, name string) (*domain.Feature, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation("feature name is required")
	}
	return s.repo.Create(ctx, &domain.Feature{Name: name})
}

// GetByID returns a feature by id.
func (s *FeatureService) GetByID(ctx context.Context, id int64) (*domain.Feature, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName returns a feature by name.
func (s *FeatureService) GetByName(ctx context.Context, name string) (*domain.Feature, error) {
	return s.repo.GetByName(ctx, name)
}

// Update renames a feature.
func (s *FeatureService) Update(ctx context.Context, id int64, name string) (*domain.Feature, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation("feature name is required")
	}
	return s.repo.Update(ctx, id, name)
}

// Delete removes a feature from every bundle and license that references it.
func (s *FeatureService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns a page of features ordered by id.
func (s *FeatureService) List(ctx context.Context, page domain.PageRequest) ([]domain.Feature, int64, error) {
	return s.repo.List(ctx, page)
}

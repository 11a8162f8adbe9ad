// Package licensing provides the entitlement store's service layer: input
// validation in front of the repositories, and the cross-entity entitlement
// resolution.
package licensing

import (
	"context"
	"strings"

	"bouncer/internal/domain"
)

// PrincipalService provides principal management operations.
type PrincipalService struct {
	repo     domain.PrincipalRepository
	holdings domain.PrincipalLicenseRepository
}

// NewPrincipalService creates a new PrincipalService.
func NewPrincipalService(repo domain.PrincipalRepository, holdings domain.PrincipalLicenseRepository) *PrincipalService {
	return &PrincipalService{repo: repo, holdings: holdings}
}

// Create validates and persists a new principal.
func (s *PrincipalService) Create(ctx context.Context, externalID string) (*domain.Principal, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, domain.ErrValidation("external id is required")
	}
	return s.repo.Create(ctx, &domain.Principal{ExternalID: externalID})
}

// GetByID returns a principal by id.
func (s *PrincipalService) GetByID(ctx context.Context, id int64) (*domain.Principal, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByExternalID returns a principal by its external identity.
func (s *PrincipalService) GetByExternalID(ctx context.Context, externalID string) (*domain.Principal, error) {
	return s.repo.GetByExternalID(ctx, externalID)
}

// Update changes a principal's external id.
func (s *PrincipalService) Update(ctx context.Context, id int64, externalID string) (*domain.Principal, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, domain.ErrValidation("external id is required")
	}
	return s.repo.Update(ctx, id, externalID)
}

// Delete removes a principal together with its license assignments.
func (s *PrincipalService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns a page of principals ordered by id.
func (s *PrincipalService) List(ctx context.Context, page domain.PageRequest) ([]domain.Principal, int64, error) {
	return s.repo.List(ctx, page)
}

// AssignLicense links a license to a principal.
func (s *PrincipalService) AssignLicense(ctx context.Context, principalID, licenseID int64) (*domain.PrincipalLicense, error) {
	return s.holdings.Link(ctx, principalID, licenseID)
}

// UnassignLicense removes a license assignment. Detaching an absent
// assignment is a no-op.
func (s *PrincipalService) UnassignLicense(ctx context.Context, principalID, licenseID int64) error {
	return s.holdings.Unlink(ctx, principalID, licenseID)
}

// ListLicenses returns the licenses a principal holds. The principal must
// exist; an empty holding set is a regular outcome.
func (s *PrincipalService) ListLicenses(ctx context.Context, principalID int64) ([]domain.License, error) {
	if _, err := s.repo.GetByID(ctx, principalID); err != nil {
		return nil, err
	}
	return s.holdings.ListLicenses(ctx, principalID)
}

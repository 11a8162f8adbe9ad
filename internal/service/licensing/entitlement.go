package licensing

import (
	"context"
	"time"

	"bouncer/internal/domain"
)

// EntitlementService answers the domain question "which features does this
// principal currently hold". Expiration is evaluated at read time against the
// clock passed to the repository; there is no background sweep.
type EntitlementService struct {
	principals   domain.PrincipalRepository
	entitlements domain.EntitlementRepository
}

// NewEntitlementService creates a new EntitlementService.
func NewEntitlementService(principals domain.PrincipalRepository, entitlements domain.EntitlementRepository) *EntitlementService {
	return &EntitlementService{principals: principals, entitlements: entitlements}
}

// Resolve returns the features granted through the principal's active,
// non-expired licenses, deduplicated by id. An unknown principal is NotFound;
// a known principal with no grants yields an empty set.
func (s *EntitlementService) Resolve(ctx context.Context, principalID int64) ([]domain.Feature, error) {
	if _, err := s.principals.GetByID(ctx, principalID); err != nil {
		return nil, err
	}
	features, err := s.entitlements.FeaturesForPrincipal(ctx, principalID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if features == nil {
		features = []domain.Feature{}
	}
	return features, nil
}

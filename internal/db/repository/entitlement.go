package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.EntitlementRepository = (*EntitlementRepo)(nil)

// EntitlementRepo resolves the features a principal currently holds. The
// whole reachability walk (principal_licenses → licenses → license_features
// → features) is one joined query so the cost stays flat as grants grow.
type EntitlementRepo struct {
	db *sql.DB
}

// NewEntitlementRepo creates a new EntitlementRepo.
func NewEntitlementRepo(db *sql.DB) *EntitlementRepo {
	return &EntitlementRepo{db: db}
}

// FeaturesForPrincipal returns the deduplicated feature set granted through
// the principal's active, non-expired licenses, ordered by feature id. A
// principal with no grants yields an empty set. Bundles have no entitlement
// effect and do not participate.
func (r *EntitlementRepo) FeaturesForPrincipal(ctx context.Context, principalID int64, now time.Time) ([]domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT f.id, f.name, f.created_at, f.updated_at
		FROM principal_licenses pl
		JOIN licenses l ON l.id = pl.license_id
		JOIN license_features lf ON lf.license_id = l.id
		JOIN features f ON f.id = lf.feature_id
		WHERE pl.principal_id = ?
		  AND l.status = ?
		  AND (l.expiration IS NULL OR l.expiration > ?)
		ORDER BY f.id
	`, principalID, int(domain.LicenseStatusActive), domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	return scanFeatures(rows)
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.LicenseFeatureRepository = (*LicenseFeatureRepo)(nil)

// LicenseFeatureRepo manages the license ↔ feature junction rows.
type LicenseFeatureRepo struct {
	db *sql.DB
}

// NewLicenseFeatureRepo creates a new LicenseFeatureRepo.
func NewLicenseFeatureRepo(db *sql.DB) *LicenseFeatureRepo {
	return &LicenseFeatureRepo{db: db}
}

// Link grants a feature through a license. Duplicate pairs surface as
// Conflict, unresolvable ids as InvalidReference.
func (r *LicenseFeatureRepo) Link(ctx context.Context, licenseID, featureID int64) (*domain.LicenseFeature, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO license_features (license_id, feature_id, created_at) VALUES (?, ?, ?)
	`, licenseID, featureID, domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapDBError(err)
	}
	return &domain.LicenseFeature{ID: id, LicenseID: licenseID, FeatureID: featureID, CreatedAt: now}, nil
}

// Unlink removes a feature grant from a license. Absence is not an error.
func (r *LicenseFeatureRepo) Unlink(ctx context.Context, licenseID, featureID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM license_features WHERE license_id = ? AND feature_id = ?
	`, licenseID, featureID)
	return mapDBError(err)
}

// ListFeatures returns the license's features ordered by feature id.
func (r *LicenseFeatureRepo) ListFeatures(ctx context.Context, licenseID int64) ([]domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.name, f.created_at, f.updated_at
		FROM license_features lf
		JOIN features f ON f.id = lf.feature_id
		WHERE lf.license_id = ?
		ORDER BY f.id
	`, licenseID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return scanFeatures(rows)
}

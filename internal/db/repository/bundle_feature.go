package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.BundleFeatureRepository = (*BundleFeatureRepo)(nil)

// BundleFeatureRepo manages the bundle ↔ feature junction rows. Referential
// integrity comes from the schema's foreign keys, duplicate-pair rejection
// from the composite unique constraint.
type BundleFeatureRepo struct {
	db *sql.DB
}

// NewBundleFeatureRepo creates a new BundleFeatureRepo.
func NewBundleFeatureRepo(db *sql.DB) *BundleFeatureRepo {
	return &BundleFeatureRepo{db: db}
}

// Link attaches a feature to a bundle. Duplicate pairs surface as Conflict,
// unresolvable ids as InvalidReference.
func (r *BundleFeatureRepo) Link(ctx context.Context, bundleID, featureID int64) (*domain.BundleFeature, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO bundle_features (bundle_id, feature_id, created_at) VALUES (?, ?, ?)
	`, bundleID, featureID, domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapDBError(err)
	}
	return &domain.BundleFeature{ID: id, BundleID: bundleID, FeatureID: featureID, CreatedAt: now}, nil
}

// Unlink detaches a feature from a bundle. Absence is not an error.
func (r *BundleFeatureRepo) Unlink(ctx context.Context, bundleID, featureID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM bundle_features WHERE bundle_id = ? AND feature_id = ?
	`, bundleID, featureID)
	return mapDBError(err)
}

// ListFeatures returns the bundle's features ordered by feature id.
func (r *BundleFeatureRepo) ListFeatures(ctx context.Context, bundleID int64) ([]domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.name, f.created_at, f.updated_at
		FROM bundle_features bf
		JOIN features f ON f.id = bf.feature_id
		WHERE bf.bundle_id = ?
		ORDER BY f.id
	`, bundleID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return scanFeatures(rows)
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.FeatureRepository = (*FeatureRepo)(nil)

// FeatureRepo stores features in SQLite.
type FeatureRepo struct {
	db *sql.DB
}

// NewFeatureRepo creates a new FeatureRepo.
func NewFeatureRepo(db *sql.DB) *FeatureRepo {
	return &FeatureRepo{db: db}
}

// Create inserts a new feature. Duplicate names are rejected by the unique
// constraint.
func (r *FeatureRepo) Create(ctx context.Context, f *domain.Feature) (*domain.Feature, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO features (name, created_at) VALUES (?, ?)
	`, f.Name, domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a feature by id.
func (r *FeatureRepo) GetByID(ctx context.Context, id int64) (*domain.Feature, error) {
	return r.getOne(ctx, `
		SELECT id, name, created_at, updated_at FROM features WHERE id = ?
	`, id)
}

// GetByName returns a feature by name.
func (r *FeatureRepo) GetByName(ctx context.Context, name string) (*domain.Feature, error) {
	return r.getOne(ctx, `
		SELECT id, name, created_at, updated_at FROM features WHERE name = ?
	`, name)
}

// Update renames a feature and stamps updated_at.
func (r *FeatureRepo) Update(ctx context.Context, id int64, name string) (*domain.Feature, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE features SET name = ?, updated_at = ? WHERE id = ?
	`, name, domain.FormatTime(time.Now().UTC()), id)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("feature %d not found", id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a feature. Both junctions that reference it (bundle_features
// and license_features) cascade in the same statement.
func (r *FeatureRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM features WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("feature %d not found", id)
	}
	return nil
}

// List returns features ordered by id ascending.
func (r *FeatureRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Feature, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM features`).Scan(&total); err != nil {
		return nil, 0, mapDBError(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM features ORDER BY id LIMIT ? OFFSET ?
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, mapDBError(err)
	}

	features, err := scanFeatures(rows)
	if err != nil {
		return nil, 0, err
	}
	return features, total, nil
}

func (r *FeatureRepo) getOne(ctx context.Context, stmt string, args ...interface{}) (*domain.Feature, error) {
	var (
		f         domain.Feature
		createdAt string
		updatedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&f.ID, &f.Name, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if f.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, err
	}
	if f.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

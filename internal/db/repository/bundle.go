package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.BundleRepository = (*BundleRepo)(nil)

// BundleRepo stores bundles in SQLite.
type BundleRepo struct {
	db *sql.DB
}

// NewBundleRepo creates a new BundleRepo.
func NewBundleRepo(db *sql.DB) *BundleRepo {
	return &BundleRepo{db: db}
}

// Create inserts a new bundle. Duplicate names are rejected by the unique
// constraint.
func (r *BundleRepo) Create(ctx context.Context, b *domain.Bundle) (*domain.Bundle, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO bundles (name, created_at) VALUES (?, ?)
	`, b.Name, domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a bundle by id.
func (r *BundleRepo) GetByID(ctx context.Context, id int64) (*domain.Bundle, error) {
	return r.getOne(ctx, `
		SELECT id, name, created_at, updated_at FROM bundles WHERE id = ?
	`, id)
}

// GetByName returns a bundle by name.
func (r *BundleRepo) GetByName(ctx context.Context, name string) (*domain.Bundle, error) {
	return r.getOne(ctx, `
		SELECT id, name, created_at, updated_at FROM bundles WHERE name = ?
	`, name)
}

// Update renames a bundle and stamps updated_at.
func (r *BundleRepo) Update(ctx context.Context, id int64, name string) (*domain.Bundle, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bundles SET name = ?, updated_at = ? WHERE id = ?
	`, name, domain.FormatTime(time.Now().UTC()), id)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("bundle %d not found", id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a bundle; its bundle_features rows cascade.
func (r *BundleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bundles WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("bundle %d not found", id)
	}
	return nil
}

// List returns bundles ordered by id ascending.
func (r *BundleRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Bundle, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bundles`).Scan(&total); err != nil {
		return nil, 0, mapDBError(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM bundles ORDER BY id LIMIT ? OFFSET ?
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var bundles []domain.Bundle
	for rows.Next() {
		var (
			b         domain.Bundle
			createdAt string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Name, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		if b.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
			return nil, 0, err
		}
		if b.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
			return nil, 0, err
		}
		bundles = append(bundles, b)
	}
	return bundles, total, rows.Err()
}

func (r *BundleRepo) getOne(ctx context.Context, stmt string, args ...interface{}) (*domain.Bundle, error) {
	var (
		b         domain.Bundle
		createdAt string
		updatedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&b.ID, &b.Name, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if b.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

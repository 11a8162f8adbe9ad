package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.PrincipalRepository = (*PrincipalRepo)(nil)

// PrincipalRepo stores principals in SQLite.
type PrincipalRepo struct {
	db *sql.DB
}

// NewPrincipalRepo creates a new PrincipalRepo.
func NewPrincipalRepo(db *sql.DB) *PrincipalRepo {
	return &PrincipalRepo{db: db}
}

// Create inserts a new principal. The external_id unique constraint, not an
// application pre-check, rejects duplicates.
func (r *PrincipalRepo) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO principals (external_id, created_at) VALUES (?, ?)
	`, p.ExternalID, domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a principal by id.
func (r *PrincipalRepo) GetByID(ctx context.Context, id int64) (*domain.Principal, error) {
	return r.getOne(ctx, `
		SELECT id, external_id, created_at, updated_at FROM principals WHERE id = ?
	`, id)
}

// GetByExternalID returns a principal by its external identity.
func (r *PrincipalRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Principal, error) {
	return r.getOne(ctx, `
		SELECT id, external_id, created_at, updated_at FROM principals WHERE external_id = ?
	`, externalID)
}

// Update changes a principal's external id and stamps updated_at. A collision
// with a different principal surfaces as Conflict from the unique constraint.
func (r *PrincipalRepo) Update(ctx context.Context, id int64, externalID string) (*domain.Principal, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE principals SET external_id = ?, updated_at = ? WHERE id = ?
	`, externalID, domain.FormatTime(time.Now().UTC()), id)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("principal %d not found", id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a principal. Its principal_licenses rows go with it via the
// schema-level cascade.
func (r *PrincipalRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM principals WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("principal %d not found", id)
	}
	return nil
}

// List returns principals ordered by id ascending.
func (r *PrincipalRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Principal, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM principals`).Scan(&total); err != nil {
		return nil, 0, mapDBError(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, external_id, created_at, updated_at FROM principals ORDER BY id LIMIT ? OFFSET ?
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var principals []domain.Principal
	for rows.Next() {
		var (
			p         domain.Principal
			createdAt string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ExternalID, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		if p.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
			return nil, 0, err
		}
		if p.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
			return nil, 0, err
		}
		principals = append(principals, p)
	}
	return principals, total, rows.Err()
}

func (r *PrincipalRepo) getOne(ctx context.Context, stmt string, args ...interface{}) (*domain.Principal, error) {
	var (
		p         domain.Principal
		createdAt string
		updatedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&p.ID, &p.ExternalID, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if p.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

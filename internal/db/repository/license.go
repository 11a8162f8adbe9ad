package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.LicenseRepository = (*LicenseRepo)(nil)

// LicenseRepo stores licenses in SQLite. Reads surface the lazily-evaluated
// Expired status; the stored row is not rewritten by a sweep.
type LicenseRepo struct {
	db *sql.DB
}

// NewLicenseRepo creates a new LicenseRepo.
func NewLicenseRepo(db *sql.DB) *LicenseRepo {
	return &LicenseRepo{db: db}
}

// Create inserts a new license. client_key and private_key must each be
// unique; a collision on either surfaces as Conflict naming the column.
func (r *LicenseRepo) Create(ctx context.Context, l *domain.License) (*domain.License, error) {
	now := time.Now().UTC()
	status := l.Status
	if status == 0 {
		status = domain.LicenseStatusActive
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO licenses (client_key, private_key, assignee, expiration, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.ClientKey, l.PrivateKey, l.Assignee, nullTimeArg(l.Expiration), int(status), domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a license by id.
func (r *LicenseRepo) GetByID(ctx context.Context, id int64) (*domain.License, error) {
	return r.getOne(ctx, `
		SELECT id, client_key, private_key, assignee, expiration, status, created_at, updated_at
		FROM licenses WHERE id = ?
	`, id)
}

// GetByClientKey returns a license by its client key.
func (r *LicenseRepo) GetByClientKey(ctx context.Context, clientKey string) (*domain.License, error) {
	return r.getOne(ctx, `
		SELECT id, client_key, private_key, assignee, expiration, status, created_at, updated_at
		FROM licenses WHERE client_key = ?
	`, clientKey)
}

// Update rewrites the mutable fields and stamps updated_at. Key collisions
// with other licenses surface as Conflict from the unique constraints.
func (r *LicenseRepo) Update(ctx context.Context, id int64, upd domain.LicenseUpdate) (*domain.License, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE licenses
		SET client_key = ?, private_key = ?, assignee = ?, expiration = ?, updated_at = ?
		WHERE id = ?
	`, upd.ClientKey, upd.PrivateKey, upd.Assignee, nullTimeArg(upd.Expiration),
		domain.FormatTime(time.Now().UTC()), id)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("license %d not found", id)
	}
	return r.GetByID(ctx, id)
}

// SetStatus applies a lifecycle transition. Only an effectively-active
// license (stored Active and not past its expiration) may transition, and
// only to Revoked or Expired. The WHERE clause carries the transition rule so
// concurrent callers are arbitrated by the store, not by a read-then-write.
func (r *LicenseRepo) SetStatus(ctx context.Context, id int64, status domain.LicenseStatus) (*domain.License, error) {
	if !status.Valid() {
		return nil, domain.ErrValidation("unknown license status %d", int(status))
	}
	if !domain.LicenseStatusActive.CanTransitionTo(status) {
		return nil, domain.ErrValidation("licenses cannot transition to %s", status)
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE licenses
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ? AND (expiration IS NULL OR expiration > ?)
	`, int(status), domain.FormatTime(now), id, int(domain.LicenseStatusActive), domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Distinguish a missing license from a terminal one.
		l, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrValidation("license %d is %s and cannot transition to %s",
			id, l.EffectiveStatus(now), status)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a license; its license_features and principal_licenses rows
// cascade in the same statement.
func (r *LicenseRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM licenses WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("license %d not found", id)
	}
	return nil
}

// List returns licenses ordered by id ascending.
func (r *LicenseRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.License, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM licenses`).Scan(&total); err != nil {
		return nil, 0, mapDBError(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_key, private_key, assignee, expiration, status, created_at, updated_at
		FROM licenses ORDER BY id LIMIT ? OFFSET ?
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	now := time.Now().UTC()
	var licenses []domain.License
	for rows.Next() {
		l, err := scanLicense(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		l.Status = l.EffectiveStatus(now)
		licenses = append(licenses, *l)
	}
	return licenses, total, rows.Err()
}

func (r *LicenseRepo) getOne(ctx context.Context, stmt string, args ...interface{}) (*domain.License, error) {
	l, err := scanLicense(r.db.QueryRowContext(ctx, stmt, args...).Scan)
	if err != nil {
		return nil, mapDBError(err)
	}
	l.Status = l.EffectiveStatus(time.Now().UTC())
	return l, nil
}

// scanLicense reads one license row through the given scan function.
func scanLicense(scan func(dest ...interface{}) error) (*domain.License, error) {
	var (
		l          domain.License
		expiration sql.NullString
		status     int
		createdAt  string
		updatedAt  sql.NullString
	)
	err := scan(&l.ID, &l.ClientKey, &l.PrivateKey, &l.Assignee, &expiration, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	l.Status = domain.LicenseStatus(status)
	if l.Expiration, err = parseNullTime(expiration); err != nil {
		return nil, err
	}
	if l.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// nullTimeArg encodes an optional timestamp for storage.
func nullTimeArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return domain.FormatTime(*t)
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"bouncer/internal/domain"
)

var _ domain.PrincipalLicenseRepository = (*PrincipalLicenseRepo)(nil)

// PrincipalLicenseRepo manages the principal ↔ license junction rows.
type PrincipalLicenseRepo struct {
	db *sql.DB
}

// NewPrincipalLicenseRepo creates a new PrincipalLicenseRepo.
func NewPrincipalLicenseRepo(db *sql.DB) *PrincipalLicenseRepo {
	return &PrincipalLicenseRepo{db: db}
}

// Link assigns a license to a principal. Duplicate pairs surface as Conflict,
// unresolvable ids as InvalidReference.
func (r *PrincipalLicenseRepo) Link(ctx context.Context, principalID, licenseID int64) (*domain.PrincipalLicense, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO principal_licenses (principal_id, license_id, created_at) VALUES (?, ?, ?)
	`, principalID, licenseID, domain.FormatTime(now))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapDBError(err)
	}
	return &domain.PrincipalLicense{ID: id, PrincipalID: principalID, LicenseID: licenseID, CreatedAt: now}, nil
}

// Unlink removes a license assignment. Absence is not an error.
func (r *PrincipalLicenseRepo) Unlink(ctx context.Context, principalID, licenseID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM principal_licenses WHERE principal_id = ? AND license_id = ?
	`, principalID, licenseID)
	return mapDBError(err)
}

// ListLicenses returns the principal's licenses ordered by license id, with
// the lazily-evaluated Expired status applied.
func (r *PrincipalLicenseRepo) ListLicenses(ctx context.Context, principalID int64) ([]domain.License, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.client_key, l.private_key, l.assignee, l.expiration, l.status, l.created_at, l.updated_at
		FROM principal_licenses pl
		JOIN licenses l ON l.id = pl.license_id
		WHERE pl.principal_id = ?
		ORDER BY l.id
	`, principalID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	now := time.Now().UTC()
	var licenses []domain.License
	for rows.Next() {
		l, err := scanLicense(rows.Scan)
		if err != nil {
			return nil, err
		}
		l.Status = l.EffectiveStatus(now)
		licenses = append(licenses, *l)
	}
	return licenses, rows.Err()
}

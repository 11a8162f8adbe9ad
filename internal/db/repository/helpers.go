// Package repository implements the domain repository interfaces over SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"bouncer/internal/domain"
)

// mapDBError translates engine-level errors into the typed domain set.
// Constraint violations are surfaced by SQLite, never pre-checked in
// application code, so the translation here is what arbitrates races
// between concurrent writers.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound("resource not found")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrUnavailable(err, "storage operation interrupted")
	}

	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			field := uniqueColumn(serr.Error())
			if field != "" {
				return domain.ErrConflict(field, "duplicate value for %s", field)
			}
			return domain.ErrConflict("", "resource already exists")
		case sqlite3.ErrConstraintForeignKey:
			return domain.ErrInvalidReference("referenced entity does not exist")
		}
		switch serr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return domain.ErrUnavailable(err, "database is busy")
		}
	}
	return err
}

// uniqueColumn extracts the colliding column from a message like
// "UNIQUE constraint failed: licenses.client_key". Composite constraints
// list several columns; the first is reported.
func uniqueColumn(msg string) string {
	const prefix = "UNIQUE constraint failed: "
	i := strings.Index(msg, prefix)
	if i < 0 {
		return ""
	}
	col := msg[i+len(prefix):]
	if j := strings.IndexByte(col, ','); j >= 0 {
		col = col[:j]
	}
	if j := strings.IndexByte(col, '.'); j >= 0 {
		col = col[j+1:]
	}
	return strings.TrimSpace(col)
}

// rowsAffected unwraps sql.Result.RowsAffected with error context.
func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func parseCreatedAt(s string) (time.Time, error) {
	t, err := domain.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at: %w", err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := domain.ParseTime(ns.String)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp: %w", err)
	}
	return &t, nil
}

// scanFeatures materializes feature rows ordered by the query. Shared by the
// association repositories and the entitlement query.
func scanFeatures(rows *sql.Rows) ([]domain.Feature, error) {
	defer rows.Close() //nolint:errcheck

	var features []domain.Feature
	for rows.Next() {
		var (
			f         domain.Feature
			createdAt string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		var err error
		if f.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
			return nil, err
		}
		if f.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

package domain

import "time"

// LicenseStatus enumerates the lifecycle states of a license.
type LicenseStatus int

const (
	LicenseStatusActive  LicenseStatus = 1
	LicenseStatusRevoked LicenseStatus = 2
	LicenseStatusExpired LicenseStatus = 3
)

// String returns the lowercase name of the status.
func (s LicenseStatus) String() string {
	switch s {
	case LicenseStatusActive:
		return "active"
	case LicenseStatusRevoked:
		return "revoked"
	case LicenseStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Valid reports whether s is a known status value.
func (s LicenseStatus) Valid() bool {
	return s == LicenseStatusActive || s == LicenseStatusRevoked || s == LicenseStatusExpired
}

// CanTransitionTo reports whether the transition s → next is allowed.
// Revoked and Expired are terminal.
func (s LicenseStatus) CanTransitionTo(next LicenseStatus) bool {
	if s != LicenseStatusActive {
		return false
	}
	return next == LicenseStatusRevoked || next == LicenseStatusExpired
}

// ParseLicenseStatus maps a status name to its value.
func ParseLicenseStatus(name string) (LicenseStatus, error) {
	switch name {
	case "active":
		return LicenseStatusActive, nil
	case "revoked":
		return LicenseStatusRevoked, nil
	case "expired":
		return LicenseStatusExpired, nil
	default:
		return 0, ErrValidation("unknown license status %q", name)
	}
}

// License is a grant record tying an assignee to a set of features. ClientKey
// and PrivateKey are opaque strings, each unique across all licenses; key
// generation and verification live outside this store.
type License struct {
	ID         int64
	ClientKey  string
	PrivateKey string
	Assignee   string
	Expiration *time.Time
	Status     LicenseStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// EffectiveStatus returns the status as of now: an Active license whose
// expiration has passed reads as Expired. Expiration is evaluated lazily at
// read time; no background sweep updates the stored status.
func (l *License) EffectiveStatus(now time.Time) LicenseStatus {
	if l.Status == LicenseStatusActive && l.Expiration != nil && !l.Expiration.After(now) {
		return LicenseStatusExpired
	}
	return l.Status
}

// Grantable reports whether the license currently conveys its features.
func (l *License) Grantable(now time.Time) bool {
	return l.EffectiveStatus(now) == LicenseStatusActive
}

package domain

import "time"

// Bundle is a named, reusable grouping of features. Bundles are a catalog
// construct only: membership in a bundle has no entitlement effect.
type Bundle struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Feature is an atomic capability that can be granted through a license.
type Feature struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

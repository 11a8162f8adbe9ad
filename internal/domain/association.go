package domain

import "time"

// Junction rows exist solely to assert a many-to-many edge between two
// entities. They are removed by the storage layer's cascade when either
// endpoint is deleted.

// BundleFeature asserts that a bundle groups a feature.
type BundleFeature struct {
	ID        int64
	BundleID  int64
	FeatureID int64
	CreatedAt time.Time
}

// LicenseFeature asserts that a license grants a feature.
type LicenseFeature struct {
	ID        int64
	LicenseID int64
	FeatureID int64
	CreatedAt time.Time
}

// PrincipalLicense asserts that a principal holds a license.
type PrincipalLicense struct {
	ID          int64
	PrincipalID int64
	LicenseID   int64
	CreatedAt   time.Time
}

package domain

import (
	"context"
	"time"
)

// PrincipalRepository provides CRUD operations for principals.
type PrincipalRepository interface {
	Create(ctx context.Context, p *Principal) (*Principal, error)
	GetByID(ctx context.Context, id int64) (*Principal, error)
	GetByExternalID(ctx context.Context, externalID string) (*Principal, error)
	Update(ctx context.Context, id int64, externalID string) (*Principal, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageRequest) ([]Principal, int64, error)
}

// BundleRepository provides CRUD operations for bundles.
type BundleRepository interface {
	Create(ctx context.Context, b *Bundle) (*Bundle, error)
	GetByID(ctx context.Context, id int64) (*Bundle, error)
	GetByName(ctx context.Context, name string) (*Bundle, error)
	Update(ctx context.Context, id int64, name string) (*Bundle, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageRequest) ([]Bundle, int64, error)
}

// FeatureRepository provides CRUD operations for features.
type FeatureRepository interface {
	Create(ctx context.Context, f *Feature) (*Feature, error)
	GetByID(ctx context.Context, id int64) (*Feature, error)
	GetByName(ctx context.Context, name string) (*Feature, error)
	Update(ctx context.Context, id int64, name string) (*Feature, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageRequest) ([]Feature, int64, error)
}

// LicenseUpdate holds the mutable fields of a license for Update.
type LicenseUpdate struct {
	ClientKey  string
	PrivateKey string
	Assignee   string
	Expiration *time.Time
}

// LicenseRepository provides CRUD and status-transition operations for
// licenses.
type LicenseRepository interface {
	Create(ctx context.Context, l *License) (*License, error)
	GetByID(ctx context.Context, id int64) (*License, error)
	GetByClientKey(ctx context.Context, clientKey string) (*License, error)
	Update(ctx context.Context, id int64, upd LicenseUpdate) (*License, error)
	SetStatus(ctx context.Context, id int64, status LicenseStatus) (*License, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageRequest) ([]License, int64, error)
}

// BundleFeatureRepository manages the bundle ↔ feature junction.
type BundleFeatureRepository interface {
	Link(ctx context.Context, bundleID, featureID int64) (*BundleFeature, error)
	Unlink(ctx context.Context, bundleID, featureID int64) error
	ListFeatures(ctx context.Context, bundleID int64) ([]Feature, error)
}

// LicenseFeatureRepository manages the license ↔ feature junction.
type LicenseFeatureRepository interface {
	Link(ctx context.Context, licenseID, featureID int64) (*LicenseFeature, error)
	Unlink(ctx context.Context, licenseID, featureID int64) error
	ListFeatures(ctx context.Context, licenseID int64) ([]Feature, error)
}

// PrincipalLicenseRepository manages the principal ↔ license junction.
type PrincipalLicenseRepository interface {
	Link(ctx context.Context, principalID, licenseID int64) (*PrincipalLicense, error)
	Unlink(ctx context.Context, principalID, licenseID int64) error
	ListLicenses(ctx context.Context, principalID int64) ([]License, error)
}

// EntitlementRepository answers the cross-entity read: the features a
// principal holds through active, non-expired licenses. Implemented as a
// single joined query rather than per-row calls.
type EntitlementRepository interface {
	FeaturesForPrincipal(ctx context.Context, principalID int64, now time.Time) ([]Feature, error)
}

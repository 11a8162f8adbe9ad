package domain

import "time"

// Principal represents an identity (user, client, or system) that can hold
// licenses. ExternalID is the identifier assigned by the external identity
// provider and is unique across all principals.
type Principal struct {
	ID         int64
	ExternalID string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

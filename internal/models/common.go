package models

import "time"

// AuditFields contains common timestamp fields for persisted records.
type AuditFields struct {
	CreatedAt     time.Time `bson:"createdAt" db:"created_at"`
	LastUpdatedAt time.Time `bson:"updatedAt" db:"updated_at"`
}

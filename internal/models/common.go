package models

import "time"

// AuditFields contains standard audit columns shared by versioned tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	Version       int64     `db:"version"`
}

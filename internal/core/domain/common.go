package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Version is the optimistic-locking marker: every successful write bumps it by one.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	Version       int64     `json:"version"`
}

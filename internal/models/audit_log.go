package models

import "time"

// AuditLog is an immutable, append-only record of a state change.
// It deliberately does not embed Base: audit rows are never updated,
// so there is no updatedAt column. UserID is the acting identity and
// may be nil for system-initiated changes.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"userId"`
	Action     string    `gorm:"size:64;not null" json:"action"`
	EntityType string    `gorm:"size:32;not null" json:"entityType"`
	EntityID   *uint     `json:"entityId"`
	OldValue   *string   `gorm:"type:text" json:"oldValue"`
	NewValue   *string   `gorm:"type:text" json:"newValue"`
	IPAddress  string    `gorm:"size:64" json:"ipAddress,omitempty"`
	UserAgent  string    `gorm:"size:255" json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// File: internal/common/model.go
package common

import (
	"time"
)

// TimestampedModel defines the created/updated columns shared by all tables.
// Primary keys differ per table (auth UIDs for users, serial integers for
// companies), so unlike a uuid base model this only carries the timestamps.
type TimestampedModel struct {
	CreatedAt time.Time `gorm:"column:created_at;not null;default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:current_timestamp" json:"updated_at"`
}

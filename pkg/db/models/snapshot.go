package models

import "time"

// Snapshot holds one durably persisted blob, replaced as a whole on every
// write.
type Snapshot struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey;size:191"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name regardless of naming strategy.
func (Snapshot) TableName() string {
	return "snapshots"
}

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Assessment is an append-only log entry. Rows are created once per
// submission and never updated or deleted by the backend.
type Assessment struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ProfileID uuid.UUID      `gorm:"type:uuid;index;not null" json:"profile_id"`
	Profile   *Profile       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProfileID;references:ID" json:"profile,omitempty"`
	Type      string         `gorm:"not null;index;column:type" json:"type"`
	Version   string         `gorm:"not null;column:version" json:"version"`
	Responses datatypes.JSON `gorm:"type:jsonb;not null;column:responses" json:"responses"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Assessment) TableName() string {
	return "assessment"
}

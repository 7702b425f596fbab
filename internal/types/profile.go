package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile carries the derived genome state: GenomeBlocks is a jsonb array of
// eight non-negative integers and GenomeString is its fixed-width rendering.
// The two are always written together so they never diverge at rest.
type Profile struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name          string         `gorm:"not null;column:name" json:"name"`
	GenomeVersion string         `gorm:"column:genome_version" json:"genome_version"`
	GenomeBlocks  datatypes.JSON `gorm:"type:jsonb;column:genome_blocks" json:"genome_blocks"`
	GenomeString  string         `gorm:"column:genome_string" json:"genome_string"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profile"
}

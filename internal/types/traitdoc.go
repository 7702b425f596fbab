package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TraitDoc is the per-profile accumulating key-value map of derived (and
// manually patched) scalar attributes. Values only grows keys; assessment
// submissions merge into it non-destructively.
type TraitDoc struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"profile_id"`
	Profile   *Profile       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProfileID;references:ID" json:"profile,omitempty"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Values    datatypes.JSON `gorm:"type:jsonb;not null;default:'{}';column:values" json:"values"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (TraitDoc) TableName() string {
	return "trait_doc"
}

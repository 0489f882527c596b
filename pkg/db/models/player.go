package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a member of the dice-game roster. Only active players accrue
// payment obligations during reconciliation.
type Player struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null;unique" json:"name"`
	Active     bool      `gorm:"column:active;not null;default:true" json:"active"`
	Registered bool      `gorm:"column:registered;not null;default:false" json:"registered"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

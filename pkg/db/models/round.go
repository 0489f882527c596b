package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/hoptimisten/hoptimisten-backend/pkg/db/types"
)

// Round is one pass of the dice within a game.
type Round struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GameID      uuid.UUID         `gorm:"column:game_id;type:uuid;not null;index" json:"gameId"`
	AttendeeIDs dbtypes.UUIDArray `gorm:"column:attendee_ids;type:uuid[]" json:"attendeeIds"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Game *Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/hoptimisten/hoptimisten-backend/pkg/db/types"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
)

// Game is one evening of play. Completing a game triggers payment
// reconciliation for it.
type Game struct {
	ID                    uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Datetime              time.Time          `gorm:"column:datetime;not null" json:"datetime"`
	PlaceKind             enums.PlaceKind    `gorm:"column:place_kind;not null;default:'home'" json:"placeKind"`
	PlaceDetail           *string            `gorm:"column:place_detail" json:"placeDetail,omitempty"`
	Completed             bool               `gorm:"column:completed;not null;default:false" json:"completed"`
	ExcludeFromStatistics bool               `gorm:"column:exclude_from_statistics;not null;default:false" json:"excludeFromStatistics"`
	ParticipantIDs        dbtypes.UUIDArray  `gorm:"column:participant_ids;type:uuid[]" json:"participantIds"`
	CreatedAt             time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

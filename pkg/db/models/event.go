package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event records that an event type occurred for a player. RoundID is nil for
// game-level events.
type Event struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GameID        uuid.UUID       `gorm:"column:game_id;type:uuid;not null;index" json:"gameId"`
	RoundID       *uuid.UUID      `gorm:"column:round_id;type:uuid;index" json:"roundId,omitempty"`
	PlayerID      uuid.UUID       `gorm:"column:player_id;type:uuid;not null;index" json:"playerId"`
	EventTypeID   uuid.UUID       `gorm:"column:event_type_id;type:uuid;not null;index" json:"eventTypeId"`
	Multiplicator decimal.Decimal `gorm:"column:multiplicator;type:numeric(12,2);not null;default:1" json:"multiplicator"`
	Comment       *string         `gorm:"column:comment" json:"comment,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Player    *Player    `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	EventType *EventType `gorm:"foreignKey:EventTypeID" json:"eventType,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
)

// Payment is one (player, game, unit) obligation. PenaltyValue is the amount
// the record was last reconciled against; OutstandingValue is the signed
// remaining balance (negative means the player holds a credit). At most one
// row exists per (game_id, player_id, unit).
type Payment struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GameID           uuid.UUID         `gorm:"column:game_id;type:uuid;not null;index;uniqueIndex:uq_payments_game_player_unit" json:"gameId"`
	PlayerID         uuid.UUID         `gorm:"column:player_id;type:uuid;not null;index;uniqueIndex:uq_payments_game_player_unit" json:"playerId"`
	Unit             enums.PenaltyUnit `gorm:"column:unit;not null;uniqueIndex:uq_payments_game_player_unit" json:"unit"`
	PenaltyValue     decimal.Decimal   `gorm:"column:penalty_value;type:numeric(12,2);not null" json:"penaltyValue"`
	OutstandingValue decimal.Decimal   `gorm:"column:outstanding_value;type:numeric(12,2);not null" json:"outstandingValue"`
	Confirmed        bool              `gorm:"column:confirmed;not null;default:false" json:"confirmed"`
	ConfirmedAt      *time.Time        `gorm:"column:confirmed_at" json:"confirmedAt,omitempty"`
	ConfirmedBy      *string           `gorm:"column:confirmed_by" json:"confirmedBy,omitempty"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Player *Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Game   *Game   `gorm:"foreignKey:GameID" json:"game,omitempty"`
}

// Untouched reports whether nothing was ever settled against the record:
// the outstanding balance still equals the reconciled penalty.
func (p Payment) Untouched() bool {
	return p.OutstandingValue.Equal(p.PenaltyValue)
}

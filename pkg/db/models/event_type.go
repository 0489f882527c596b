package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
)

// EventType is a scoring rule. Penalty value and unit are optional as a pair:
// some event types are purely informational.
type EventType struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Description  string             `gorm:"column:description;not null" json:"description"`
	Context      enums.EventContext `gorm:"column:context;not null;default:'round'" json:"context"`
	Trigger      *string            `gorm:"column:trigger" json:"trigger,omitempty"`
	PenaltyValue *decimal.Decimal   `gorm:"column:penalty_value;type:numeric(12,2)" json:"penaltyValue,omitempty"`
	PenaltyUnit  *enums.PenaltyUnit `gorm:"column:penalty_unit" json:"penaltyUnit,omitempty"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// HasPenalty reports whether the event type carries a penalty definition.
func (t EventType) HasPenalty() bool {
	return t.PenaltyValue != nil && t.PenaltyUnit != nil
}

package games

import (
	"time"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
)

// CreateGameInput is the payload for scheduling a game.
type CreateGameInput struct {
	Datetime       time.Time       `json:"datetime" validate:"required"`
	PlaceKind      enums.PlaceKind `json:"placeKind" validate:"required"`
	PlaceDetail    *string         `json:"placeDetail"`
	ParticipantIDs []uuid.UUID     `json:"participantIds" validate:"required,min=1,dive,required"`
}

// UpdateGameInput carries partial game updates. Nil fields are untouched.
type UpdateGameInput struct {
	Datetime              *time.Time       `json:"datetime"`
	PlaceKind             *enums.PlaceKind `json:"placeKind"`
	PlaceDetail           *string          `json:"placeDetail"`
	ExcludeFromStatistics *bool            `json:"excludeFromStatistics"`
	ParticipantIDs        []uuid.UUID      `json:"participantIds" validate:"omitempty,min=1,dive,required"`
}

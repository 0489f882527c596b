package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/internal/eventtypes"
	"github.com/hoptimisten/hoptimisten-backend/internal/games"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

// CreateEventInput records one occurrence of an event type for a player.
type CreateEventInput struct {
	GameID        uuid.UUID        `json:"gameId" validate:"required"`
	RoundID       *uuid.UUID       `json:"roundId"`
	PlayerID      uuid.UUID        `json:"playerId" validate:"required"`
	EventTypeID   uuid.UUID        `json:"eventTypeId" validate:"required"`
	Multiplicator *decimal.Decimal `json:"multiplicator"`
	Comment       *string          `json:"comment"`
}

// Service records and removes scoring events. Events are the raw material
// penalty sums are derived from; changing them re-opens the game's payments
// on the next reconciliation.
type Service interface {
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Event, error)
	Create(ctx context.Context, input CreateEventInput) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams wires the event service dependencies.
type ServiceParams struct {
	Repo       Repository
	Games      games.Service
	EventTypes eventtypes.Service
}

type service struct {
	repo       Repository
	games      games.Service
	eventTypes eventtypes.Service
}

// NewService wires an event service with the provided collaborators.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("events repository required")
	}
	if params.Games == nil {
		return nil, fmt.Errorf("games service required")
	}
	if params.EventTypes == nil {
		return nil, fmt.Errorf("event types service required")
	}
	return &service{
		repo:       params.Repo,
		games:      params.Games,
		eventTypes: params.EventTypes,
	}, nil
}

func (s *service) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Event, error) {
	if gameID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}
	events, err := s.repo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	return events, nil
}

func (s *service) Create(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	if input.PlayerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player id required")
	}

	game, err := s.games.Get(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if !game.ParticipantIDs.Contains(input.PlayerID) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player is not a participant of the game")
	}

	eventType, err := s.eventTypes.Get(ctx, input.EventTypeID)
	if err != nil {
		return nil, err
	}
	if eventType.Context == enums.EventContextRound && input.RoundID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "round-scoped event type requires a round")
	}
	if eventType.Context == enums.EventContextGame && input.RoundID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game-scoped event type cannot reference a round")
	}

	multiplicator := decimal.NewFromInt(1)
	if input.Multiplicator != nil {
		if !input.Multiplicator.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "multiplicator must be positive")
		}
		multiplicator = *input.Multiplicator
	}

	event := &models.Event{
		GameID:        input.GameID,
		RoundID:       input.RoundID,
		PlayerID:      input.PlayerID,
		EventTypeID:   input.EventTypeID,
		Multiplicator: multiplicator,
		Comment:       input.Comment,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event")
	}
	return event, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete event")
	}
	return nil
}

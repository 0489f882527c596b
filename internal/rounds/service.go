package rounds

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/internal/games"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	dbtypes "github.com/hoptimisten/hoptimisten-backend/pkg/db/types"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

// CreateRoundInput is the payload for recording a round within a game.
type CreateRoundInput struct {
	AttendeeIDs []uuid.UUID `json:"attendeeIds" validate:"required,min=1,dive,required"`
}

// Service manages the rounds of a game.
type Service interface {
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Round, error)
	Create(ctx context.Context, gameID uuid.UUID, input CreateRoundInput) (*models.Round, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	games games.Service
}

// NewService wires a round service with the provided collaborators.
func NewService(repo Repository, gameService games.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rounds repository required")
	}
	if gameService == nil {
		return nil, fmt.Errorf("games service required")
	}
	return &service{repo: repo, games: gameService}, nil
}

func (s *service) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Round, error) {
	if gameID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}
	rounds, err := s.repo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rounds")
	}
	return rounds, nil
}

// Create records a round. Attendees must be drawn from the game's
// participants; a round in a completed game is rejected.
func (s *service) Create(ctx context.Context, gameID uuid.UUID, input CreateRoundInput) (*models.Round, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Completed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot add rounds to a completed game")
	}
	if len(input.AttendeeIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one attendee required")
	}
	for _, id := range input.AttendeeIDs {
		if !game.ParticipantIDs.Contains(id) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "attendee is not a participant of the game").
				WithDetails(map[string]string{"playerId": id.String()})
		}
	}

	round := &models.Round{
		GameID:      gameID,
		AttendeeIDs: dbtypes.UUIDArray(input.AttendeeIDs),
	}
	if err := s.repo.Create(ctx, round); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create round")
	}
	return round, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "round id required")
	}
	round, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load round")
	}
	if round == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "round not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete round")
	}
	return nil
}

package games

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	dbtypes "github.com/hoptimisten/hoptimisten-backend/pkg/db/types"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
)

// Reconciler settles payment records for one game. Satisfied by the payments
// service.
type Reconciler interface {
	Reconcile(ctx context.Context, gameID uuid.UUID) ([]models.Payment, error)
}

// Broadcaster announces a completed game to subscribed clients.
type Broadcaster interface {
	BroadcastGameCompleted(ctx context.Context, gameID uuid.UUID) error
}

// Service manages games. Completing a game settles its payments and notifies
// the group.
type Service interface {
	List(ctx context.Context) ([]models.Game, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Game, error)
	Create(ctx context.Context, input CreateGameInput) (*models.Game, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGameInput) (*models.Game, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID) (*models.Game, error)
}

// ServiceParams wires the game service dependencies.
type ServiceParams struct {
	Repo        Repository
	Reconciler  Reconciler
	Broadcaster Broadcaster
	Logger      *logger.Logger
}

type service struct {
	repo        Repository
	reconciler  Reconciler
	broadcaster Broadcaster
	logg        *logger.Logger
}

// NewService wires a game service with the provided collaborators.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("games repository required")
	}
	if params.Reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	return &service{
		repo:        params.Repo,
		reconciler:  params.Reconciler,
		broadcaster: params.Broadcaster,
		logg:        params.Logger,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.Game, error) {
	games, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list games")
	}
	return games, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load game")
	}
	if game == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
	}
	return game, nil
}

func (s *service) Create(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	if input.Datetime.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game datetime required")
	}
	if !input.PlaceKind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid place kind")
	}
	if len(input.ParticipantIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one participant required")
	}
	for _, id := range input.ParticipantIDs {
		if id == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "participant id cannot be empty")
		}
	}

	game := &models.Game{
		Datetime:       input.Datetime,
		PlaceKind:      input.PlaceKind,
		PlaceDetail:    input.PlaceDetail,
		ParticipantIDs: dbtypes.UUIDArray(input.ParticipantIDs),
	}
	if err := s.repo.Create(ctx, game); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create game")
	}
	return game, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateGameInput) (*models.Game, error) {
	game, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Datetime != nil {
		game.Datetime = *input.Datetime
	}
	if input.PlaceKind != nil {
		if !input.PlaceKind.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid place kind")
		}
		game.PlaceKind = *input.PlaceKind
	}
	if input.PlaceDetail != nil {
		game.PlaceDetail = input.PlaceDetail
	}
	if input.ExcludeFromStatistics != nil {
		game.ExcludeFromStatistics = *input.ExcludeFromStatistics
	}
	if input.ParticipantIDs != nil {
		for _, pid := range input.ParticipantIDs {
			if pid == uuid.Nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "participant id cannot be empty")
			}
		}
		game.ParticipantIDs = dbtypes.UUIDArray(input.ParticipantIDs)
	}

	if err := s.repo.Update(ctx, game); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update game")
	}
	return game, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	game, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if game.Completed {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "completed games cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete game")
	}
	return nil
}

// Complete marks the game as played and settles its payments. Completing an
// already completed game re-runs reconciliation, which is safe: with
// unchanged events it writes nothing. The push broadcast is best effort and
// never fails the completion.
func (s *service) Complete(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	game, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.Completed {
		game.Completed = true
		if err := s.repo.Update(ctx, game); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark game completed")
		}
	}

	if _, err := s.reconciler.Reconcile(ctx, id); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		if err := s.broadcaster.BroadcastGameCompleted(ctx, id); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithGameID(ctx, id.String()), "completion broadcast failed")
		}
	}

	return game, nil
}

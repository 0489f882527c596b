package rounds

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/internal/games"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	dbtypes "github.com/hoptimisten/hoptimisten-backend/pkg/db/types"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

type fakeRepository struct {
	listByGameFn func(ctx context.Context, gameID uuid.UUID) ([]models.Round, error)
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Round, error)
	createFn     func(ctx context.Context, round *models.Round) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Round, error) {
	if f.listByGameFn != nil {
		return f.listByGameFn(ctx, gameID)
	}
	return nil, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Round, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepository) Create(ctx context.Context, round *models.Round) error {
	if f.createFn != nil {
		return f.createFn(ctx, round)
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeGames struct {
	getFn func(ctx context.Context, id uuid.UUID) (*models.Game, error)
}

func (f *fakeGames) List(ctx context.Context) ([]models.Game, error) { return nil, nil }

func (f *fakeGames) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
}

func (f *fakeGames) Create(ctx context.Context, input games.CreateGameInput) (*models.Game, error) {
	return nil, nil
}

func (f *fakeGames) Update(ctx context.Context, id uuid.UUID, input games.UpdateGameInput) (*models.Game, error) {
	return nil, nil
}

func (f *fakeGames) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeGames) Complete(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return nil, nil
}

func TestCreateAcceptsParticipantsOnly(t *testing.T) {
	gameID := uuid.New()
	participant := uuid.New()
	outsider := uuid.New()

	gameService := &fakeGames{
		getFn: func(ctx context.Context, id uuid.UUID) (*models.Game, error) {
			return &models.Game{
				ID:             gameID,
				ParticipantIDs: dbtypes.UUIDArray{participant},
			}, nil
		},
	}
	var created *models.Round
	repo := &fakeRepository{
		createFn: func(ctx context.Context, round *models.Round) error {
			created = round
			return nil
		},
	}
	svc, err := NewService(repo, gameService)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	round, err := svc.Create(context.Background(), gameID, CreateRoundInput{AttendeeIDs: []uuid.UUID{participant}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil || round.GameID != gameID {
		t.Fatalf("round not persisted: %+v", created)
	}

	_, err = svc.Create(context.Background(), gameID, CreateRoundInput{AttendeeIDs: []uuid.UUID{outsider}})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for non-participant, got %v", err)
	}
}

func TestCreateRefusesCompletedGame(t *testing.T) {
	participant := uuid.New()
	gameService := &fakeGames{
		getFn: func(ctx context.Context, id uuid.UUID) (*models.Game, error) {
			return &models.Game{
				ID:             id,
				Completed:      true,
				ParticipantIDs: dbtypes.UUIDArray{participant},
			}, nil
		},
	}
	svc, err := NewService(&fakeRepository{}, gameService)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), CreateRoundInput{AttendeeIDs: []uuid.UUID{participant}})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestDeleteUnknownRoundIsNotFound(t *testing.T) {
	svc, err := NewService(&fakeRepository{}, &fakeGames{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	err = svc.Delete(context.Background(), uuid.New())
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

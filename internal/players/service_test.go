package players

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

type fakeRepository struct {
	listFn       func(ctx context.Context) ([]models.Player, error)
	listActiveFn func(ctx context.Context) ([]models.Player, error)
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Player, error)
	createFn     func(ctx context.Context, player *models.Player) error
	updateFn     func(ctx context.Context, player *models.Player) error
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Player, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepository) ListActive(ctx context.Context) ([]models.Player, error) {
	if f.listActiveFn != nil {
		return f.listActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepository) Create(ctx context.Context, player *models.Player) error {
	if f.createFn != nil {
		return f.createFn(ctx, player)
	}
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, player *models.Player) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, player)
	}
	return nil
}

func TestCreateTrimsNameAndDefaultsActive(t *testing.T) {
	var created *models.Player
	repo := &fakeRepository{
		createFn: func(ctx context.Context, player *models.Player) error {
			created = player
			return nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	player, err := svc.Create(context.Background(), CreatePlayerInput{Name: "  Anna "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil || created.Name != "Anna" {
		t.Fatalf("unexpected stored player: %+v", created)
	}
	if !player.Active {
		t.Fatal("new players must start active")
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreatePlayerInput{Name: "   "}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCreateDuplicateNameIsConflict(t *testing.T) {
	repo := &fakeRepository{
		createFn: func(ctx context.Context, player *models.Player) error {
			return errors.New(`pq: duplicate key value violates unique constraint "players_name_key"`)
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Create(context.Background(), CreatePlayerInput{Name: "Anna"})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetUnknownPlayerIsNotFound(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	_, err = svc.Get(context.Background(), uuid.New())
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeactivateClearsActiveFlag(t *testing.T) {
	id := uuid.New()
	stored := &models.Player{ID: id, Name: "Bernd", Active: true}
	var saved *models.Player
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, lookup uuid.UUID) (*models.Player, error) {
			if lookup == id {
				return stored, nil
			}
			return nil, nil
		},
		updateFn: func(ctx context.Context, player *models.Player) error {
			saved = player
			return nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	player, err := svc.Deactivate(context.Background(), id)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if player.Active {
		t.Fatal("player should be inactive")
	}
	if saved == nil || saved.Active {
		t.Fatalf("deactivation not persisted: %+v", saved)
	}
	if saved.Name != "Bernd" {
		t.Fatalf("name must survive deactivation, got %q", saved.Name)
	}
}

package players

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

// Service manages the player roster. ListActive is the roster feed payment
// reconciliation iterates over.
type Service interface {
	List(ctx context.Context) ([]models.Player, error)
	ListActive(ctx context.Context) ([]models.Player, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Player, error)
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePlayerInput) (*models.Player, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

type service struct {
	repo Repository
}

// NewService wires a player service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("players repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list players")
	}
	return players, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Player, error) {
	players, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active players")
	}
	return players, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player id required")
	}
	player, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load player")
	}
	if player == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "player not found")
	}
	return player, nil
}

func (s *service) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player name required")
	}

	player := &models.Player{
		Name:   name,
		Active: true,
	}
	if err := s.repo.Create(ctx, player); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "player name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create player")
	}
	return player, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "player name cannot be empty")
		}
		player.Name = name
	}
	if input.Active != nil {
		player.Active = *input.Active
	}
	if input.Registered != nil {
		player.Registered = *input.Registered
	}

	if err := s.repo.Update(ctx, player); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "player name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update player")
	}
	return player, nil
}

// Deactivate retires a player from the roster. Payment history survives; the
// player simply stops accruing obligations on future reconciliations.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	inactive := false
	return s.Update(ctx, id, UpdatePlayerInput{Active: &inactive})
}

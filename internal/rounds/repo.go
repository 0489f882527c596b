package rounds

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
)

// Repository manages persistence for rounds.
type Repository interface {
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Round, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Round, error)
	Create(ctx context.Context, round *models.Round) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a round repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Round, error) {
	var rounds []models.Round
	if err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Find(&rounds).Error; err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Round, error) {
	var round models.Round
	err := r.db.WithContext(ctx).First(&round, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *repository) Create(ctx context.Context, round *models.Round) error {
	return r.db.WithContext(ctx).Create(round).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Round{}, "id = ?", id).Error
}

package players

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
)

// Repository manages persistence for the player roster.
type Repository interface {
	List(ctx context.Context) ([]models.Player, error)
	ListActive(ctx context.Context) ([]models.Player, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a player repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).First(&player, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *repository) Create(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *repository) Update(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Save(player).Error
}

package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
)

// Repository manages persistence for payment records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	FindByGameID(ctx context.Context, gameID uuid.UUID) ([]models.Payment, error)
	SaveAll(ctx context.Context, payments []models.Payment) ([]models.Payment, error)
	RemoveAll(ctx context.Context, payments []models.Payment) error
	Save(ctx context.Context, payment *models.Payment) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payment repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Player").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) FindByGameID(ctx context.Context, gameID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Player").
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) SaveAll(ctx context.Context, payments []models.Payment) ([]models.Payment, error) {
	if len(payments) == 0 {
		return payments, nil
	}
	if err := r.db.WithContext(ctx).Save(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) RemoveAll(ctx context.Context, payments []models.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(payments))
	for _, payment := range payments {
		ids = append(ids, payment.ID)
	}
	return r.db.WithContext(ctx).Delete(&models.Payment{}, "id IN ?", ids).Error
}

func (r *repository) Save(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

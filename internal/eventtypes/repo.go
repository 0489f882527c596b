package eventtypes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
)

// Repository manages persistence for event types.
type Repository interface {
	List(ctx context.Context) ([]models.EventType, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.EventType, error)
	Create(ctx context.Context, eventType *models.EventType) error
	Update(ctx context.Context, eventType *models.EventType) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEvents(ctx context.Context, eventTypeID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an event type repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.EventType, error) {
	var eventTypes []models.EventType
	if err := r.db.WithContext(ctx).
		Order("description ASC").
		Find(&eventTypes).Error; err != nil {
		return nil, err
	}
	return eventTypes, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.EventType, error) {
	var eventType models.EventType
	err := r.db.WithContext(ctx).First(&eventType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &eventType, nil
}

func (r *repository) Create(ctx context.Context, eventType *models.EventType) error {
	return r.db.WithContext(ctx).Create(eventType).Error
}

func (r *repository) Update(ctx context.Context, eventType *models.EventType) error {
	return r.db.WithContext(ctx).Save(eventType).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.EventType{}, "id = ?", id).Error
}

func (r *repository) CountEvents(ctx context.Context, eventTypeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("event_type_id = ?", eventTypeID).
		Count(&count).Error
	return count, err
}

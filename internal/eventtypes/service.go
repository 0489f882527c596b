package eventtypes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

// CreateEventTypeInput is the payload for defining a scoring rule.
type CreateEventTypeInput struct {
	Description  string             `json:"description" validate:"required,min=1,max=200"`
	Context      enums.EventContext `json:"context" validate:"required"`
	Trigger      *string            `json:"trigger"`
	PenaltyValue *decimal.Decimal   `json:"penaltyValue"`
	PenaltyUnit  *enums.PenaltyUnit `json:"penaltyUnit"`
}

// UpdateEventTypeInput carries partial event type updates. The penalty pair
// is replaced atomically: either both fields or neither.
type UpdateEventTypeInput struct {
	Description  *string             `json:"description" validate:"omitempty,min=1,max=200"`
	Context      *enums.EventContext `json:"context"`
	Trigger      *string             `json:"trigger"`
	PenaltyValue *decimal.Decimal    `json:"penaltyValue"`
	PenaltyUnit  *enums.PenaltyUnit  `json:"penaltyUnit"`
	ClearPenalty bool                `json:"clearPenalty"`
}

// Service manages the catalog of scoring rules.
type Service interface {
	List(ctx context.Context) ([]models.EventType, error)
	Get(ctx context.Context, id uuid.UUID) (*models.EventType, error)
	Create(ctx context.Context, input CreateEventTypeInput) (*models.EventType, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEventTypeInput) (*models.EventType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires an event type service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("event types repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.EventType, error) {
	eventTypes, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list event types")
	}
	return eventTypes, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.EventType, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event type id required")
	}
	eventType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event type")
	}
	if eventType == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event type not found")
	}
	return eventType, nil
}

func (s *service) Create(ctx context.Context, input CreateEventTypeInput) (*models.EventType, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	if !input.Context.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid event context")
	}
	if err := validatePenaltyPair(input.PenaltyValue, input.PenaltyUnit); err != nil {
		return nil, err
	}

	eventType := &models.EventType{
		Description:  description,
		Context:      input.Context,
		Trigger:      input.Trigger,
		PenaltyValue: input.PenaltyValue,
		PenaltyUnit:  input.PenaltyUnit,
	}
	if err := s.repo.Create(ctx, eventType); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event type")
	}
	return eventType, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEventTypeInput) (*models.EventType, error) {
	eventType, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "description cannot be empty")
		}
		eventType.Description = description
	}
	if input.Context != nil {
		if !input.Context.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid event context")
		}
		eventType.Context = *input.Context
	}
	if input.Trigger != nil {
		eventType.Trigger = input.Trigger
	}

	switch {
	case input.ClearPenalty:
		if input.PenaltyValue != nil || input.PenaltyUnit != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "clearPenalty excludes penalty fields")
		}
		eventType.PenaltyValue = nil
		eventType.PenaltyUnit = nil
	case input.PenaltyValue != nil || input.PenaltyUnit != nil:
		if err := validatePenaltyPair(input.PenaltyValue, input.PenaltyUnit); err != nil {
			return nil, err
		}
		eventType.PenaltyValue = input.PenaltyValue
		eventType.PenaltyUnit = input.PenaltyUnit
	}

	if err := s.repo.Update(ctx, eventType); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update event type")
	}
	return eventType, nil
}

// Delete removes a scoring rule that was never used. Rules with recorded
// events are kept so historic penalties stay reproducible.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountEvents(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count events")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "event type is referenced by recorded events")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete event type")
	}
	return nil
}

func validatePenaltyPair(value *decimal.Decimal, unit *enums.PenaltyUnit) error {
	if (value == nil) != (unit == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation, "penalty value and unit must be set together")
	}
	if value == nil {
		return nil
	}
	if !value.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "penalty value must be positive")
	}
	if !unit.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid penalty unit")
	}
	return nil
}

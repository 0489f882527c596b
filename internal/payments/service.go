package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hoptimisten/hoptimisten-backend/internal/statistics"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
	"github.com/hoptimisten/hoptimisten-backend/pkg/metrics"
	"github.com/hoptimisten/hoptimisten-backend/pkg/redis"
)

// Service reconciles payment records against derived penalty totals and
// exposes the operator-facing read/update paths.
type Service interface {
	Reconcile(ctx context.Context, gameID uuid.UUID) ([]models.Payment, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]PaymentResponse, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentResponse, error)
}

// ServiceParams wires the payment service dependencies.
type ServiceParams struct {
	Repo      Repository
	Penalties PenaltySource
	Players   PlayerSource
	Locker    redis.Locker
	Metrics   *metrics.ReconcileMetrics
	Logger    *logger.Logger
	LockTTL   time.Duration
}

type service struct {
	repo      Repository
	penalties PenaltySource
	players   PlayerSource
	locker    redis.Locker
	metrics   *metrics.ReconcileMetrics
	logg      *logger.Logger
	lockTTL   time.Duration
}

// NewService wires a payment service with the provided collaborators.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if params.Penalties == nil {
		return nil, fmt.Errorf("penalty source required")
	}
	if params.Players == nil {
		return nil, fmt.Errorf("player source required")
	}
	return &service{
		repo:      params.Repo,
		penalties: params.Penalties,
		players:   params.Players,
		locker:    params.Locker,
		metrics:   params.Metrics,
		logg:      params.Logger,
		lockTTL:   params.LockTTL,
	}, nil
}

type slotKey struct {
	playerID uuid.UUID
	unit     enums.PenaltyUnit
}

// Reconcile diffs the fresh penalty totals for one game against the persisted
// payment records and applies the minimal create/update/delete set. Removals
// are flushed before saves. The whole run is guarded by a per-game lock so
// concurrent triggers for the same game cannot race the read-decide-write
// cycle; running it again with unchanged inputs writes nothing.
func (s *service) Reconcile(ctx context.Context, gameID uuid.UUID) ([]models.Payment, error) {
	if gameID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}

	if s.locker != nil {
		scope := "reconcile:" + gameID.String()
		acquired, err := s.locker.AcquireLock(ctx, scope, s.lockTTL)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire reconcile lock")
		}
		if !acquired {
			return nil, pkgerrors.New(pkgerrors.CodeLocked, "reconciliation already running for game")
		}
		defer func() {
			if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), scope); err != nil && s.logg != nil {
				s.logg.Warn(s.logg.WithGameID(ctx, gameID.String()), "failed to release reconcile lock")
			}
		}()
	}

	start := time.Now()

	// The three reads are independent; fetch them together. Nothing is
	// written before all of them succeed.
	var (
		activePlayers []models.Player
		penaltySums   []statistics.PenaltySum
		existing      []models.Payment
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		activePlayers, err = s.players.ListActive(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		penaltySums, err = s.penalties.PenaltiesByGames(groupCtx, []uuid.UUID{gameID}, true)
		return err
	})
	group.Go(func() error {
		var err error
		existing, err = s.repo.FindByGameID(groupCtx, gameID)
		return err
	})
	if err := group.Wait(); err != nil {
		s.metrics.IncFailure("reconcile")
		return nil, err
	}

	penaltyBySlot := make(map[slotKey]decimal.Decimal, len(penaltySums))
	for _, sum := range penaltySums {
		penaltyBySlot[slotKey{playerID: sum.PlayerID, unit: sum.Unit}] = sum.Penalty
	}
	paymentBySlot := make(map[slotKey]*models.Payment, len(existing))
	for i := range existing {
		payment := &existing[i]
		paymentBySlot[slotKey{playerID: payment.PlayerID, unit: payment.Unit}] = payment
	}

	var toSave []models.Payment
	var toRemove []models.Payment

	for _, player := range activePlayers {
		for _, unit := range enums.PenaltyUnits() {
			key := slotKey{playerID: player.ID, unit: unit}
			penalty, penaltyFound := penaltyBySlot[key]
			payment, paymentFound := paymentBySlot[key]

			switch {
			case !paymentFound && !penaltyFound:
				// nothing owed, nothing recorded

			case !paymentFound && penaltyFound:
				if !penalty.IsPositive() {
					continue
				}
				toSave = append(toSave, models.Payment{
					GameID:           gameID,
					PlayerID:         player.ID,
					Unit:             unit,
					PenaltyValue:     penalty,
					OutstandingValue: penalty,
					Confirmed:        false,
				})

			case paymentFound && penaltyFound:
				if penalty.Equal(payment.PenaltyValue) {
					continue
				}
				ApplyPenaltyChange(payment, penalty)
				toSave = append(toSave, *payment)

			case paymentFound && !penaltyFound:
				if payment.Untouched() {
					toRemove = append(toRemove, *payment)
					continue
				}
				// Something was already settled against the record; keep it
				// at zero penalty so the remaining credit/debt survives.
				ApplyPenaltyChange(payment, decimal.Zero)
				toSave = append(toSave, *payment)
			}
		}
	}

	// Removals go first. A failed save afterwards leaves only rows behind
	// that had nothing further to reconcile in this run.
	if len(toRemove) > 0 {
		if err := s.repo.RemoveAll(ctx, toRemove); err != nil {
			s.metrics.IncFailure("reconcile")
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove payments")
		}
	}
	saved := toSave
	if len(toSave) > 0 {
		var err error
		saved, err = s.repo.SaveAll(ctx, toSave)
		if err != nil {
			s.metrics.IncFailure("reconcile")
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save payments")
		}
	}

	s.metrics.ObserveDuration("reconcile", time.Since(start))
	s.metrics.IncSuccess("reconcile")
	s.metrics.AddSaved(len(toSave))
	s.metrics.AddRemoved(len(toRemove))

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"game_id": gameID.String(),
			"saved":   len(toSave),
			"removed": len(toRemove),
		})
		s.logg.Info(logCtx, "payments.reconciled")
	}

	return saved, nil
}

func (s *service) ListByGame(ctx context.Context, gameID uuid.UUID) ([]PaymentResponse, error) {
	if gameID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}

	rows, err := s.repo.FindByGameID(ctx, gameID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}

	responses := make([]PaymentResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toPaymentResponse(row))
	}
	return responses, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentResponse, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	if payment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}

	wasConfirmed := payment.Confirmed

	if input.OutstandingValue != nil {
		payment.OutstandingValue = *input.OutstandingValue
	}
	if input.Confirmed != nil {
		payment.Confirmed = *input.Confirmed
		if payment.Confirmed && input.ConfirmedBy != nil {
			payment.ConfirmedBy = input.ConfirmedBy
		}
	}

	ApplyConfirmationTransition(payment, wasConfirmed, time.Now())

	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save payment")
	}

	resp := toPaymentResponse(*payment)
	return &resp, nil
}

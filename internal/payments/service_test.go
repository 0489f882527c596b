package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoptimisten/hoptimisten-backend/internal/statistics"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

type fakeRepository struct {
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	findByGameIDFn func(ctx context.Context, gameID uuid.UUID) ([]models.Payment, error)
	saveAllFn      func(ctx context.Context, payments []models.Payment) ([]models.Payment, error)
	removeAllFn    func(ctx context.Context, payments []models.Payment) error
	saveFn         func(ctx context.Context, payment *models.Payment) error

	saveAllCalls   int
	removeAllCalls int
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepository) FindByGameID(ctx context.Context, gameID uuid.UUID) ([]models.Payment, error) {
	if f.findByGameIDFn != nil {
		return f.findByGameIDFn(ctx, gameID)
	}
	return nil, nil
}

func (f *fakeRepository) SaveAll(ctx context.Context, payments []models.Payment) ([]models.Payment, error) {
	f.saveAllCalls++
	if f.saveAllFn != nil {
		return f.saveAllFn(ctx, payments)
	}
	return payments, nil
}

func (f *fakeRepository) RemoveAll(ctx context.Context, payments []models.Payment) error {
	f.removeAllCalls++
	if f.removeAllFn != nil {
		return f.removeAllFn(ctx, payments)
	}
	return nil
}

func (f *fakeRepository) Save(ctx context.Context, payment *models.Payment) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, payment)
	}
	return nil
}

type fakePenaltySource struct {
	sums []statistics.PenaltySum
	err  error
}

func (f *fakePenaltySource) PenaltiesByGames(ctx context.Context, gameIDs []uuid.UUID, onlyActive bool) ([]statistics.PenaltySum, error) {
	return f.sums, f.err
}

type fakePlayerSource struct {
	players []models.Player
	err     error
}

func (f *fakePlayerSource) ListActive(ctx context.Context) ([]models.Player, error) {
	return f.players, f.err
}

type fakeLocker struct {
	acquired bool
	err      error
	releases int
}

func (f *fakeLocker) AcquireLock(ctx context.Context, scope string, ttl time.Duration) (bool, error) {
	return f.acquired, f.err
}

func (f *fakeLocker) ReleaseLock(ctx context.Context, scope string) error {
	f.releases++
	return nil
}

func newTestService(t *testing.T, repo *fakeRepository, penalties *fakePenaltySource, players *fakePlayerSource) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:      repo,
		Penalties: penalties,
		Players:   players,
	})
	require.NoError(t, err)
	return svc
}

func TestReconcileCreatesRecordsForFreshPenalties(t *testing.T) {
	gameID := uuid.New()
	p1 := models.Player{ID: uuid.New(), Name: "P1", Active: true}
	p2 := models.Player{ID: uuid.New(), Name: "P2", Active: true}
	p3 := models.Player{ID: uuid.New(), Name: "P3", Active: true}

	penalties := &fakePenaltySource{sums: []statistics.PenaltySum{
		{PlayerID: p1.ID, Unit: enums.PenaltyUnitEuro, Penalty: dec("42")},
		{PlayerID: p1.ID, Unit: enums.PenaltyUnitBeerCrate, Penalty: dec("1")},
		{PlayerID: p2.ID, Unit: enums.PenaltyUnitEuro, Penalty: dec("21.75")},
	}}
	players := &fakePlayerSource{players: []models.Player{p1, p2, p3}}
	repo := &fakeRepository{}

	svc := newTestService(t, repo, penalties, players)

	saved, err := svc.Reconcile(context.Background(), gameID)
	require.NoError(t, err)

	require.Len(t, saved, 3)
	assert.Equal(t, 1, repo.saveAllCalls)
	assert.Equal(t, 0, repo.removeAllCalls, "no removals expected for a fresh game")

	for _, payment := range saved {
		assert.Equal(t, gameID, payment.GameID)
		assert.False(t, payment.Confirmed)
		assert.True(t, payment.PenaltyValue.Equal(payment.OutstandingValue),
			"fresh records start fully outstanding: %s != %s", payment.PenaltyValue, payment.OutstandingValue)
	}

	byKey := map[slotKey]models.Payment{}
	for _, payment := range saved {
		byKey[slotKey{playerID: payment.PlayerID, unit: payment.Unit}] = payment
	}
	assert.True(t, byKey[slotKey{p1.ID, enums.PenaltyUnitEuro}].PenaltyValue.Equal(dec("42")))
	assert.True(t, byKey[slotKey{p1.ID, enums.PenaltyUnitBeerCrate}].PenaltyValue.Equal(dec("1")))
	assert.True(t, byKey[slotKey{p2.ID, enums.PenaltyUnitEuro}].PenaltyValue.Equal(dec("21.75")))
}

func TestReconcileIsIdempotentWhenNothingChanged(t *testing.T) {
	gameID := uuid.New()
	player := models.Player{ID: uuid.New(), Name: "P1", Active: true}

	penalties := &fakePenaltySource{sums: []statistics.PenaltySum{
		{PlayerID: player.ID, Unit: enums.PenaltyUnitEuro, Penalty: dec("42")},
	}}
	players := &fakePlayerSource{players: []models.Player{player}}
	repo := &fakeRepository{
		findByGameIDFn: func(ctx context.Context, id uuid.UUID) ([]models.Payment, error) {
			return []models.Payment{{
				ID:               uuid.New(),
				GameID:           gameID,
				PlayerID:         player.ID,
				Unit:             enums.PenaltyUnitEuro,
				PenaltyValue:     dec("42"),
				OutstandingValue: dec("42"),
			}}, nil
		},
	}

	svc := newTestService(t, repo, penalties, players)

	saved, err := svc.Reconcile(context.Background(), gameID)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Equal(t, 0, repo.saveAllCalls, "unchanged inputs must not write")
	assert.Equal(t, 0, repo.removeAllCalls, "unchanged inputs must not remove")
}

func TestReconcileSkipsZeroPenaltyWithoutRecord(t *testing.T) {
	gameID := uuid.New()
	player := models.Player{ID: uuid.New(), Active: true}

	penalties := &fakePenaltySource{sums: []statistics.PenaltySum{
		{PlayerID: player.ID, Unit: enums.PenaltyUnitEuro, Penalty: decimal.Zero},
	}}
	players := &fakePlayerSource{players: []models.Player{player}}
	repo := &fakeRepository{}

	svc := newTestService(t, repo, penalties, players)

	saved, err := svc.Reconcile(context.Background(), gameID)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Equal(t, 0, repo.saveAllCalls)
}

func TestReconcileUpdatesPartiallySettledRecordOnShrink(t *testing.T) {
	gameID := uuid.New()
	player := models.Player{ID: uuid.New(), Active: true}
	confirmedAt := time.Now().UTC()
	confirmedBy := "kassenwart"

	penalties := &fakePenaltySource{sums: []statistics.PenaltySum{
		{PlayerID: player.ID, Unit: enums.PenaltyUnitEuro, Penalty: dec("42")},
	}}
	players := &fakePlayerSource{players: []models.Player{player}}
	repo := &fakeRepository{
		findByGameIDFn: func(ctx context.Context, id uuid.UUID) ([]models.Payment, error) {
			return []models.Payment{{
				ID:               uuid.New(),
				GameID:           gameID,
				PlayerID:         player.ID,
				Unit:             enums.PenaltyUnitEuro,
				PenaltyValue:     dec("50"),
				OutstandingValue: dec("10"),
				Confirmed:        true,
				ConfirmedAt:      &confirmedAt,
				ConfirmedBy:      &confirmedBy,
			}}, nil
		},
	}

	svc := newTestService(t, repo, penalties, players)

	saved, err := svc.Reconcile(context.Background(), gameID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 0, repo.removeAllCalls)

	updated := saved[0]
	assert.True(t, updated.PenaltyValue.Equal(dec("42")), "penalty = %s", updated.PenaltyValue)
	assert.True(t, updated.OutstandingValue.Equal(dec("2")), "outstanding = %s", updated.OutstandingValue)
	assert.False(t, updated.Confirmed)
	assert.Nil(t, updated.ConfirmedAt)
	assert.Nil(t, updated.ConfirmedBy)
}

func TestReconcileRemovesUntouchedRecordWhenPenaltyVanishes(t *testing.T) {
	gameID := uuid.New()
	player := models.Player{ID: uuid.New(), Active: true}
	confirmedAt := time.Now().UTC()

	penalties := &fakePenaltySource{}
	players := &fakePlayerSource{players: []models.Player{player}}

	var removed []models.Payment
	repo := &fakeRepository{
		findByGameIDFn: func(ctx context.Context, id uuid.UUID) ([]models.Payment, error) {
			return []models.Payment{{
				ID:               uuid.New(),
				GameID:           gameID,
				PlayerID:         player.ID,
				Unit:             enums.PenaltyUnitEuro,
				PenaltyValue:     dec("50"),
				OutstandingValue: dec("50"),
				Confirmed:        true,
				ConfirmedAt:      &confirmedAt,
			}}, nil
		},
		removeAllFn: func(ctx context.Context, payments []models.Payment) error {
			removed = payments
			return nil
		},
	}

	svc := newTestService(t, repo, penalties, players)

	saved, err := svc.Reconcile(context.Background(), gameID)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Equal(t, 0, repo.saveAllCalls, "no save expected")
	require.Len(t, removed, 1)
	assert.Equal(t, player.ID, removed[0].PlayerID)
}

func TestReconcileKeepsPartiallySettledRecordAtZeroWhenPenaltyVanishes(t *testing.T) {
	gameID := uuid.New()
	player := models.Player{ID: uuid.New(), Active: true}

	penalties := &fakePenaltySource{}
	players := &fakePlayerSource{players: []models.Player{player}}
	repo := &fakeRepository{
		findByGameIDFn: func(ctx context.Context, id uuid.UUID) ([]models.Payment, error) {
			return []models.Payment{{
				ID:               uuid.New(),
				GameID:           gameID,
				PlayerID:         player.ID,
				Unit:             enums.PenaltyUnitEuro,
				PenaltyValue:     dec("50"),
				OutstandingValue: dec("10"),
			}}, nil
		},
	}

	svc := newTestService(t, repo, penalties, players)

	saved, err := svc.Reconcile(context.Background(), gameID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 0, repo.removeAllCalls, "partially settled records must be kept")

	kept := saved[0]
	assert.True(t, kept.PenaltyValue.IsZero(), "penalty = %s", kept.PenaltyValue)
	assert.True(t, kept.OutstandingValue.Equal(dec("-40")), "outstanding = %s", kept.OutstandingValue)
}

func TestReconcileIgnoresInactivePlayers(t *testing.T) {
	gameID := uuid.New()
	inactiveID := uuid.New()

	// The penalty feed never returns inactive players; the roster drives the
	// iteration, so a stale record of an inactive player is left untouched.
	penalties := &fakePenaltySource{}
	players := &fakePlayerSource{}
	repo := &fakeRepository{
		findByGameIDFn: func(ctx context.Context, id uuid.UUID) ([]models.Payment, error) {
			return []models.Payment{{
				ID:               uuid.New(),
				GameID:           gameID,
				PlayerID:         inactiveID,
				Unit:             enums.PenaltyUnitEuro,
				PenaltyValue:     dec("50"),
				OutstandingValue: dec("50"),
			}}, nil
		},
	}

	svc := newTestService(t, repo, penalties, players)

	saved, err := svc.Reconcile(context.Background(), gameID)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Equal(t, 0, repo.saveAllCalls)
	assert.Equal(t, 0, repo.removeAllCalls)
}

func TestReconcilePropagatesFeedFailureBeforeAnyWrite(t *testing.T) {
	expectedErr := errors.New("stats down")
	penalties := &fakePenaltySource{err: expectedErr}
	players := &fakePlayerSource{players: []models.Player{{ID: uuid.New(), Active: true}}}
	repo := &fakeRepository{}

	svc := newTestService(t, repo, penalties, players)

	_, err := svc.Reconcile(context.Background(), uuid.New())
	require.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, repo.saveAllCalls)
	assert.Equal(t, 0, repo.removeAllCalls)
}

func TestReconcileRejectsNilGameID(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakePenaltySource{}, &fakePlayerSource{})
	_, err := svc.Reconcile(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestReconcileRefusesWhenLockHeld(t *testing.T) {
	locker := &fakeLocker{acquired: false}
	svc, err := NewService(ServiceParams{
		Repo:      &fakeRepository{},
		Penalties: &fakePenaltySource{},
		Players:   &fakePlayerSource{},
		Locker:    locker,
	})
	require.NoError(t, err)

	_, err = svc.Reconcile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeLocked, pkgerrors.As(err).Code())
	assert.Equal(t, 0, locker.releases, "a lock we never held must not be released")
}

func TestReconcileReleasesLockAfterRun(t *testing.T) {
	locker := &fakeLocker{acquired: true}
	svc, err := NewService(ServiceParams{
		Repo:      &fakeRepository{},
		Penalties: &fakePenaltySource{},
		Players:   &fakePlayerSource{},
		Locker:    locker,
	})
	require.NoError(t, err)

	_, err = svc.Reconcile(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, locker.releases)
}

func TestUpdateReturnsNotFoundForUnknownPayment(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakePenaltySource{}, &fakePlayerSource{})

	confirmed := true
	_, err := svc.Update(context.Background(), uuid.New(), UpdatePaymentInput{Confirmed: &confirmed})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateConfirmStampsTimestampAndAuthor(t *testing.T) {
	id := uuid.New()
	stored := &models.Payment{
		ID:               id,
		GameID:           uuid.New(),
		PlayerID:         uuid.New(),
		Unit:             enums.PenaltyUnitEuro,
		PenaltyValue:     dec("50"),
		OutstandingValue: dec("50"),
	}
	var savedPayment *models.Payment
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, lookup uuid.UUID) (*models.Payment, error) {
			if lookup == id {
				return stored, nil
			}
			return nil, nil
		},
		saveFn: func(ctx context.Context, payment *models.Payment) error {
			savedPayment = payment
			return nil
		},
	}
	svc := newTestService(t, repo, &fakePenaltySource{}, &fakePlayerSource{})

	confirmed := true
	confirmedBy := "kassenwart"
	resp, err := svc.Update(context.Background(), id, UpdatePaymentInput{
		Confirmed:   &confirmed,
		ConfirmedBy: &confirmedBy,
	})
	require.NoError(t, err)
	require.NotNil(t, savedPayment)

	assert.True(t, savedPayment.Confirmed)
	require.NotNil(t, savedPayment.ConfirmedAt)
	require.NotNil(t, savedPayment.ConfirmedBy)
	assert.Equal(t, "kassenwart", *savedPayment.ConfirmedBy)

	// Confirmed with positive outstanding -> due date two weeks out.
	require.NotNil(t, resp.DueDate)
	assert.Equal(t, savedPayment.ConfirmedAt.Add(DueDatePeriod), *resp.DueDate)
}

func TestUpdateUnconfirmClearsMetadata(t *testing.T) {
	id := uuid.New()
	confirmedAt := time.Now().UTC()
	confirmedBy := "kassenwart"
	stored := &models.Payment{
		ID:               id,
		Unit:             enums.PenaltyUnitEuro,
		PenaltyValue:     dec("50"),
		OutstandingValue: dec("0"),
		Confirmed:        true,
		ConfirmedAt:      &confirmedAt,
		ConfirmedBy:      &confirmedBy,
	}
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, lookup uuid.UUID) (*models.Payment, error) {
			return stored, nil
		},
	}
	svc := newTestService(t, repo, &fakePenaltySource{}, &fakePlayerSource{})

	confirmed := false
	resp, err := svc.Update(context.Background(), id, UpdatePaymentInput{Confirmed: &confirmed})
	require.NoError(t, err)

	assert.False(t, resp.Confirmed)
	assert.Nil(t, resp.ConfirmedAt)
	assert.Nil(t, resp.ConfirmedBy)
	assert.Nil(t, resp.DueDate)
}

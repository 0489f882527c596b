package payments

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestApplyPenaltyChangeShiftsOutstandingByDelta(t *testing.T) {
	// 40 of 50 already paid; penalty drops to 42 -> 2 still owed.
	payment := &models.Payment{
		Unit:             enums.PenaltyUnitEuro,
		PenaltyValue:     dec("50"),
		OutstandingValue: dec("10"),
	}

	ApplyPenaltyChange(payment, dec("42"))

	if !payment.PenaltyValue.Equal(dec("42")) {
		t.Fatalf("penalty value = %s, want 42", payment.PenaltyValue)
	}
	if !payment.OutstandingValue.Equal(dec("2")) {
		t.Fatalf("outstanding = %s, want 2", payment.OutstandingValue)
	}
}

func TestApplyPenaltyChangeCanProduceCredit(t *testing.T) {
	// Fully paid at 50, penalty recalculated to 42 -> 8 credit.
	payment := &models.Payment{
		PenaltyValue:     dec("50"),
		OutstandingValue: dec("0"),
	}

	ApplyPenaltyChange(payment, dec("42"))

	if !payment.OutstandingValue.Equal(dec("-8")) {
		t.Fatalf("outstanding = %s, want -8", payment.OutstandingValue)
	}
}

func TestApplyPenaltyChangeClearsConfirmation(t *testing.T) {
	confirmedAt := time.Now().UTC()
	confirmedBy := "kassenwart"
	payment := &models.Payment{
		PenaltyValue:     dec("50"),
		OutstandingValue: dec("10"),
		Confirmed:        true,
		ConfirmedAt:      &confirmedAt,
		ConfirmedBy:      &confirmedBy,
	}

	ApplyPenaltyChange(payment, dec("70"))

	if payment.Confirmed {
		t.Fatal("confirmed must be cleared on any penalty change")
	}
	if payment.ConfirmedAt != nil || payment.ConfirmedBy != nil {
		t.Fatalf("confirmation metadata must be cleared: at=%v by=%v", payment.ConfirmedAt, payment.ConfirmedBy)
	}
	if !payment.OutstandingValue.Equal(dec("30")) {
		t.Fatalf("outstanding = %s, want 30", payment.OutstandingValue)
	}
}

func TestApplyPenaltyChangeToZeroKeepsSettledDelta(t *testing.T) {
	payment := &models.Payment{
		PenaltyValue:     dec("50"),
		OutstandingValue: dec("20"),
	}

	ApplyPenaltyChange(payment, decimal.Zero)

	if !payment.PenaltyValue.IsZero() {
		t.Fatalf("penalty value = %s, want 0", payment.PenaltyValue)
	}
	if !payment.OutstandingValue.Equal(dec("-30")) {
		t.Fatalf("outstanding = %s, want -30", payment.OutstandingValue)
	}
}

func TestApplyConfirmationTransitionStampsOnConfirm(t *testing.T) {
	now := time.Date(2024, 5, 17, 20, 0, 0, 0, time.UTC)
	payment := &models.Payment{Confirmed: true}

	ApplyConfirmationTransition(payment, false, now)

	if payment.ConfirmedAt == nil || !payment.ConfirmedAt.Equal(now) {
		t.Fatalf("confirmedAt = %v, want %v", payment.ConfirmedAt, now)
	}
}

func TestApplyConfirmationTransitionClearsOnUnconfirm(t *testing.T) {
	confirmedAt := time.Now().UTC()
	confirmedBy := "kassenwart"
	payment := &models.Payment{
		Confirmed:   false,
		ConfirmedAt: &confirmedAt,
		ConfirmedBy: &confirmedBy,
	}

	ApplyConfirmationTransition(payment, true, time.Now())

	if payment.ConfirmedAt != nil || payment.ConfirmedBy != nil {
		t.Fatal("expected confirmation metadata to be cleared")
	}
}

func TestApplyConfirmationTransitionNoChangeNoEffect(t *testing.T) {
	confirmedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	payment := &models.Payment{Confirmed: true, ConfirmedAt: &confirmedAt}

	ApplyConfirmationTransition(payment, true, time.Now())

	if !payment.ConfirmedAt.Equal(confirmedAt) {
		t.Fatalf("confirmedAt must not move on a no-op transition: %v", payment.ConfirmedAt)
	}
}

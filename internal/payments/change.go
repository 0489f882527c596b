package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
)

// ApplyPenaltyChange moves a payment to a new penalty total while preserving
// whatever has already been settled against it. The outstanding balance shifts
// by the delta between old and new penalty, never resets to the new total, so
// partial payments and credits survive recalculation. Any change to the
// penalty invalidates a prior confirmation.
func ApplyPenaltyChange(payment *models.Payment, newPenaltyValue decimal.Decimal) {
	if payment == nil {
		return
	}

	wasConfirmed := payment.Confirmed

	delta := newPenaltyValue.Sub(payment.PenaltyValue)
	payment.OutstandingValue = payment.OutstandingValue.Add(delta)
	payment.PenaltyValue = newPenaltyValue
	payment.Confirmed = false
	payment.ConfirmedBy = nil

	ApplyConfirmationTransition(payment, wasConfirmed, time.Time{})
}

// ApplyConfirmationTransition enforces the confirmation timestamp rule on a
// payment whose Confirmed field may have changed since it was loaded:
//
//	false -> true: ConfirmedAt is stamped with now (ConfirmedBy is caller data)
//	true -> false: ConfirmedAt and ConfirmedBy are cleared
//	unchanged:     nothing happens
//
// Every write path that can flip Confirmed must run through this, including
// the penalty-change transform above.
func ApplyConfirmationTransition(payment *models.Payment, previouslyConfirmed bool, now time.Time) {
	if payment == nil {
		return
	}

	switch {
	case !previouslyConfirmed && payment.Confirmed:
		stamped := now.UTC()
		payment.ConfirmedAt = &stamped
	case previouslyConfirmed && !payment.Confirmed:
		payment.ConfirmedAt = nil
		payment.ConfirmedBy = nil
	}
}

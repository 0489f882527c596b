package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// DueDatePeriod is how long a player has to settle a confirmed rest debt.
const DueDatePeriod = 14 * 24 * time.Hour

// CalculateDueDate derives the payment due date from confirmation state. A due
// date exists only when the outstanding balance was confirmed while the player
// still owes something: a settled balance, a credit, or an unconfirmed debt
// has no due date.
func CalculateDueDate(confirmed bool, outstandingValue decimal.Decimal, confirmedAt *time.Time) *time.Time {
	if !confirmed || confirmedAt == nil {
		return nil
	}
	if !outstandingValue.IsPositive() {
		return nil
	}
	due := confirmedAt.Add(DueDatePeriod)
	return &due
}

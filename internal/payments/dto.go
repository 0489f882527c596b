package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
)

// PaymentResponse is the wire shape for one payment record, including the
// derived due date.
type PaymentResponse struct {
	ID               uuid.UUID         `json:"id"`
	GameID           uuid.UUID         `json:"gameId"`
	PlayerID         uuid.UUID         `json:"playerId"`
	PlayerName       string            `json:"playerName,omitempty"`
	Unit             enums.PenaltyUnit `json:"unit"`
	PenaltyValue     decimal.Decimal   `json:"penaltyValue"`
	OutstandingValue decimal.Decimal   `json:"outstandingValue"`
	Confirmed        bool              `json:"confirmed"`
	ConfirmedAt      *time.Time        `json:"confirmedAt,omitempty"`
	ConfirmedBy      *string           `json:"confirmedBy,omitempty"`
	DueDate          *time.Time        `json:"dueDate,omitempty"`
}

// UpdatePaymentInput is the operator-facing mutation surface. Reconciliation
// owns PenaltyValue; operators record settlements and confirmations.
type UpdatePaymentInput struct {
	Confirmed        *bool            `json:"confirmed"`
	ConfirmedBy      *string          `json:"confirmedBy" validate:"omitempty,min=1,max=100"`
	OutstandingValue *decimal.Decimal `json:"outstandingValue"`
}

func toPaymentResponse(payment models.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:               payment.ID,
		GameID:           payment.GameID,
		PlayerID:         payment.PlayerID,
		Unit:             payment.Unit,
		PenaltyValue:     payment.PenaltyValue,
		OutstandingValue: payment.OutstandingValue,
		Confirmed:        payment.Confirmed,
		ConfirmedAt:      payment.ConfirmedAt,
		ConfirmedBy:      payment.ConfirmedBy,
		DueDate:          CalculateDueDate(payment.Confirmed, payment.OutstandingValue, payment.ConfirmedAt),
	}
	if payment.Player != nil {
		resp.PlayerName = payment.Player.Name
	}
	return resp
}

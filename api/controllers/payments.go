package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoptimisten/hoptimisten-backend/api/middleware"
	"github.com/hoptimisten/hoptimisten-backend/api/responses"
	"github.com/hoptimisten/hoptimisten-backend/api/validators"
	"github.com/hoptimisten/hoptimisten-backend/internal/payments"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
)

// PaymentListByGame returns the payment records of one game, due dates included.
func PaymentListByGame(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := validators.ParsePathUUID(chi.URLParam(r, "gameId"), "gameId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListByGame(r.Context(), gameID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PaymentUpdate is the operator path: confirm, unconfirm or correct the
// outstanding balance of a single record.
func PaymentUpdate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "paymentId"), "paymentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input payments.UpdatePaymentInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if input.ConfirmedBy == nil {
			if username := middleware.UsernameFromContext(r.Context()); username != "" {
				input.ConfirmedBy = &username
			}
		}
		payment, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

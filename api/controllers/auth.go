package controllers

import (
	"net/http"

	"github.com/hoptimisten/hoptimisten-backend/api/responses"
	"github.com/hoptimisten/hoptimisten-backend/api/validators"
	"github.com/hoptimisten/hoptimisten-backend/internal/auth"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
)

func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input auth.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

package controllers

import (
	"net/http"

	"github.com/hoptimisten/hoptimisten-backend/api/responses"
	"github.com/hoptimisten/hoptimisten-backend/api/validators"
	"github.com/hoptimisten/hoptimisten-backend/internal/statistics"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
)

// StatisticsPenalties returns the derived penalty totals for a set of games.
func StatisticsPenalties(svc statistics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameIDs, err := validators.ParseQueryUUIDs(r, "gameIds")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(gameIDs) == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "gameIds query parameter required"))
			return
		}
		onlyActive, err := validators.ParseQueryBool(r, "onlyActive", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sums, err := svc.PenaltiesByGames(r.Context(), gameIDs, onlyActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sums)
	}
}

// StatisticsStreaks returns attendance streaks over completed games.
func StatisticsStreaks(svc statistics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		streaks, err := svc.Streaks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, streaks)
	}
}

package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/internal/statistics"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
)

// PenaltySource supplies the derived penalty totals reconciliation diffs
// against. Totals are recomputed from scratch on every call.
type PenaltySource interface {
	PenaltiesByGames(ctx context.Context, gameIDs []uuid.UUID, onlyActive bool) ([]statistics.PenaltySum, error)
}

// PlayerSource supplies the roster of players eligible for obligations.
type PlayerSource interface {
	ListActive(ctx context.Context) ([]models.Player, error)
}

package statistics

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
)

// Repository exposes the aggregation queries statistics are derived from.
type Repository interface {
	PenaltySums(ctx context.Context, gameIDs []uuid.UUID, onlyActive bool) ([]PenaltySum, error)
	CompletedGames(ctx context.Context) ([]models.Game, error)
	ActivePlayers(ctx context.Context) ([]models.Player, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a statistics repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const penaltySumsQuery = `
SELECT e.player_id AS player_id,
       t.penalty_unit AS unit,
       SUM(t.penalty_value * e.multiplicator) AS penalty
FROM events e
JOIN event_types t ON t.id = e.event_type_id
JOIN players p ON p.id = e.player_id
WHERE e.game_id IN ?
  AND t.penalty_value IS NOT NULL
  AND t.penalty_unit IS NOT NULL
  AND (? = false OR p.active = true)
GROUP BY e.player_id, t.penalty_unit
ORDER BY e.player_id, t.penalty_unit`

func (r *repository) PenaltySums(ctx context.Context, gameIDs []uuid.UUID, onlyActive bool) ([]PenaltySum, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	var sums []PenaltySum
	if err := r.db.WithContext(ctx).
		Raw(penaltySumsQuery, gameIDs, onlyActive).
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	return sums, nil
}

func (r *repository) CompletedGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := r.db.WithContext(ctx).
		Where("completed = ? AND exclude_from_statistics = ?", true, false).
		Order("datetime ASC").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *repository) ActivePlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

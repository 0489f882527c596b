package statistics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
)

// PenaltySum is the derived total one player owes in one unit across a set of
// games. It is recomputed from the recorded events on every call, never stored.
type PenaltySum struct {
	PlayerID uuid.UUID         `json:"playerId"`
	Unit     enums.PenaltyUnit `json:"unit"`
	Penalty  decimal.Decimal   `json:"penalty"`
}

// PlayerStreak reports attendance streaks for one player over completed games.
type PlayerStreak struct {
	PlayerID   uuid.UUID `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Current    int       `json:"current"`
	Longest    int       `json:"longest"`
}

// Service computes derived statistics. PenaltiesByGames is the feed payment
// reconciliation runs on.
type Service interface {
	PenaltiesByGames(ctx context.Context, gameIDs []uuid.UUID, onlyActive bool) ([]PenaltySum, error)
	Streaks(ctx context.Context) ([]PlayerStreak, error)
}

type service struct {
	repo Repository
}

// NewService wires a statistics service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("statistics repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) PenaltiesByGames(ctx context.Context, gameIDs []uuid.UUID, onlyActive bool) ([]PenaltySum, error) {
	for _, id := range gameIDs {
		if id == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
		}
	}

	sums, err := s.repo.PenaltySums(ctx, gameIDs, onlyActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate penalties")
	}
	return sums, nil
}

// Streaks walks the completed games in chronological order and tracks, per
// active player, the longest attendance run and the run that is still alive.
func (s *service) Streaks(ctx context.Context) ([]PlayerStreak, error) {
	players, err := s.repo.ActivePlayers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load players")
	}
	games, err := s.repo.CompletedGames(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load games")
	}

	streaks := make([]PlayerStreak, 0, len(players))
	for _, player := range players {
		current, longest := 0, 0
		for _, game := range games {
			if game.ParticipantIDs.Contains(player.ID) {
				current++
				if current > longest {
					longest = current
				}
			} else {
				current = 0
			}
		}
		streaks = append(streaks, PlayerStreak{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Current:    current,
			Longest:    longest,
		})
	}
	return streaks, nil
}

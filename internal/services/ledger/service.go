package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/bagrada/mythmeta/internal/dependencies/clock"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/storage"
)

// Service applies game results to player and order score records. It
// holds no state of its own; every update loads, folds, and saves
// through storage.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new ledger Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// RecordResult folds one player's outcome from one finished game into
// their record. Ranked results update the overall ranked datum and the
// per-game-type datum for the result's type; unranked results touch
// only the unranked datum. Opponents enter the tracked-opponent ring,
// and the player's order aggregates roll up alongside.
func (s *Service) RecordResult(ctx context.Context, id model.PlayerID, ranked bool, result model.GameResult) (*model.PlayerRecord, error) {
	if !result.GameType.Valid() {
		return nil, model.ErrInvalidGameType
	}

	rec, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if ranked {
		rec.RankedScore.Apply(result)
		rec.RankedScoresByGameType[result.GameType].Apply(result)
		rec.LastRankedGameTime = now
	} else {
		rec.UnrankedScore.Apply(result)
	}
	rec.LastGameTime = now

	for _, opp := range result.Opponents {
		rec.AddOpponent(opp)
	}

	if err := s.storage.SavePlayer(ctx, rec); err != nil {
		return nil, err
	}

	if rec.OrderIndex != 0 {
		if err := s.rollUpOrder(ctx, model.OrderID(rec.OrderIndex), ranked, result); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("result recorded",
		slog.Int("player_id", int(id)),
		slog.String("game_type", result.GameType.String()),
		slog.Bool("ranked", ranked),
	)

	return rec, nil
}

// rollUpOrder folds the result into the order's aggregates. Rank is a
// per-player assignment, so the order's own rank values are carried
// through unchanged; a dangling order index is stale state, not a
// failure.
func (s *Service) rollUpOrder(ctx context.Context, id model.OrderID, ranked bool, result model.GameResult) error {
	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil
		}
		return err
	}

	if ranked {
		overall := result
		overall.NewRank = order.RankedScore.Rank
		order.RankedScore.Apply(overall)

		byType := result
		byType.NewRank = order.RankedScoresByGameType[result.GameType].Rank
		order.RankedScoresByGameType[result.GameType].Apply(byType)
	} else {
		unranked := result
		unranked.NewRank = order.UnrankedScore.Rank
		order.UnrankedScore.Apply(unranked)
	}

	return s.storage.SaveOrder(ctx, order)
}

// AssignNumericalRanks runs a ranking pass over every player: position
// one is the highest ranked points total. The overall standing and each
// game type's standing are ranked independently. Players who have never
// finished a ranked game keep a zero numerical rank.
func (s *Service) AssignNumericalRanks(ctx context.Context) error {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return err
	}

	rankBy(players,
		func(r *model.PlayerRecord) *model.ScoreDatum { return &r.RankedScore })
	for gt := 0; gt < model.MaxGameTypes; gt++ {
		rankBy(players,
			func(r *model.PlayerRecord) *model.ScoreDatum { return &r.RankedScoresByGameType[gt] })
	}

	for _, rec := range players {
		if err := s.storage.SavePlayer(ctx, rec); err != nil {
			return err
		}
	}

	s.logger.Info("ranking pass complete",
		slog.Int("players", len(players)),
	)

	return nil
}

// rankBy assigns 1-based positions by descending points to the datum
// each player yields from pick. Ties break by player ID so the pass is
// deterministic; players with no games in a datum keep rank zero.
func rankBy(players []*model.PlayerRecord, pick func(*model.PlayerRecord) *model.ScoreDatum) {
	ranked := make([]*model.PlayerRecord, 0, len(players))
	for _, rec := range players {
		if pick(rec).GamesPlayed > 0 {
			ranked = append(ranked, rec)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := pick(ranked[i]), pick(ranked[j])
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return ranked[i].ID < ranked[j].ID
	})

	for i, rec := range ranked {
		pick(rec).NumericalRank = int16(i + 1)
	}
}

package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/PShah260898/PRS-FinSight/internal/holdings"
	"github.com/PShah260898/PRS-FinSight/internal/marketdata"
	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

// PortfolioService reads a user's ledger and derives positions through the
// holdings engine, pricing them via the shared quote cache.
type PortfolioService struct {
	Repo   repository.Repository
	Quotes marketdata.QuoteSource
	Logger *zap.Logger

	ZeroBasisPolicy string
}

func (s *PortfolioService) lookup(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	if s.Quotes == nil {
		return prices, nil
	}
	for symbol, q := range s.Quotes.GetLatestPrices(ctx, symbols) {
		if q.Last != nil {
			prices[symbol] = *q.Last
		}
	}
	return prices, nil
}

// Holdings recomputes positions from the full ledger. The only error surface
// is the ledger read; pricing failures degrade to unpriced positions.
func (s *PortfolioService) Holdings(ctx context.Context, userID uint64) ([]holdings.Position, holdings.Summary, error) {
	if s == nil || s.Repo == nil {
		return []holdings.Position{}, holdings.Summary{}, nil
	}
	txs, err := s.Repo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, holdings.Summary{}, err
	}
	positions := holdings.Compute(ctx, txs, s.lookup, holdings.Options{ZeroBasisPolicy: s.ZeroBasisPolicy})
	return positions, holdings.Summarize(positions), nil
}

// SnapshotPortfolios persists one valuation row per user with ledger activity.
// Runs on the hourly cron; per-user failures are logged and skipped so one bad
// ledger does not starve the rest.
func (s *PortfolioService) SnapshotPortfolios(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	userIDs, err := s.Repo.ListUserIDsWithTransactions(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Hour)
	var saved int
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		positions, summary, err := s.Holdings(ctx, userID)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("portfolio snapshot failed", zap.Uint64("user_id", userID), zap.Error(err))
			}
			continue
		}
		snap := &models.PortfolioSnapshot{
			UserID:        userID,
			SnapshotAt:    now,
			Positions:     len(positions),
			TotalValue:    summary.TotalValue,
			TotalInvested: summary.TotalInvested,
			TotalPnL:      summary.TotalPnL,
		}
		if err := s.Repo.InsertPortfolioSnapshot(ctx, snap); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("portfolio snapshot insert failed", zap.Uint64("user_id", userID), zap.Error(err))
			}
			continue
		}
		saved++
	}
	if s.Logger != nil {
		s.Logger.Info("portfolio snapshots written",
			zap.Int("users", len(userIDs)),
			zap.Int("saved", saved))
	}
	return nil
}

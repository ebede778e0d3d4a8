package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PShah260898/PRS-FinSight/internal/amfi"
	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

const syncScopeFundRegistry = "fund_registry"

// RegistryFetcher is the AMFI download boundary, injectable for tests.
type RegistryFetcher interface {
	Fetch(ctx context.Context) ([]amfi.Scheme, error)
}

// RegistrySyncService mirrors the AMFI NAV registry into fund_schemes. The
// dump is full-replace upstream, so every run upserts the whole set and stamps
// last_seen_at.
type RegistrySyncService struct {
	Repo      repository.Repository
	Client    RegistryFetcher
	Logger    *zap.Logger
	BatchSize int
}

func (s *RegistrySyncService) Sync(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.Client == nil {
		return nil
	}
	started := time.Now().UTC()
	schemes, err := s.Client.Fetch(ctx)
	if err != nil {
		s.record(ctx, started, 0, err)
		return err
	}

	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	rows := make([]models.FundScheme, 0, batchSize)
	var saved int
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		if err := s.Repo.UpsertFundSchemes(ctx, rows); err != nil {
			return err
		}
		saved += len(rows)
		rows = rows[:0]
		return nil
	}
	for _, sc := range schemes {
		rows = append(rows, models.FundScheme{
			SchemeCode:      sc.Code,
			SchemeName:      sc.Name,
			AMC:             sc.AMC,
			Category:        sc.Category,
			Plan:            inferPlan(sc.Name),
			ISINGrowth:      sc.ISINGrowth,
			ISINDivPayout:   sc.ISINDivPayout,
			ISINDivReinvest: sc.ISINDivReinvest,
			NAV:             sc.NAV,
			NAVDate:         sc.Date,
			LastSeenAt:      started,
		})
		if len(rows) >= batchSize {
			if err := flush(); err != nil {
				s.record(ctx, started, saved, err)
				return err
			}
		}
	}
	if err := flush(); err != nil {
		s.record(ctx, started, saved, err)
		return err
	}

	s.record(ctx, started, saved, nil)
	if s.Logger != nil {
		s.Logger.Info("fund registry synced",
			zap.Int("schemes", saved),
			zap.Duration("took", time.Since(started)))
	}
	return nil
}

func inferPlan(schemeName string) string {
	lc := strings.ToLower(schemeName)
	switch {
	case strings.Contains(lc, "direct"):
		return "direct"
	case strings.Contains(lc, "regular"):
		return "regular"
	default:
		return ""
	}
}

func (s *RegistrySyncService) record(ctx context.Context, at time.Time, count int, runErr error) {
	state := &models.SyncState{
		Scope:     syncScopeFundRegistry,
		LastRunAt: at,
		LastCount: count,
	}
	if runErr != nil {
		state.LastError = runErr.Error()
	}
	if err := s.Repo.SaveSyncState(ctx, state); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to save sync state", zap.Error(err))
	}
}

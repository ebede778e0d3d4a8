package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PShah260898/PRS-FinSight/internal/marketdata"
	"github.com/PShah260898/PRS-FinSight/internal/models"
)

type fixedQuotes map[string]decimal.Decimal

func (f fixedQuotes) GetLatestPrices(_ context.Context, symbols []string) map[string]marketdata.Quote {
	out := make(map[string]marketdata.Quote, len(symbols))
	for _, s := range symbols {
		if price, ok := f[s]; ok {
			p := price
			out[s] = marketdata.Quote{Symbol: s, Last: &p}
		}
	}
	return out
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestHoldings_PricesJoined(t *testing.T) {
	repo := newStubRepo()
	repo.transactions[7] = []models.Transaction{
		{UserID: 7, Date: "2026-01-05", Symbol: "AAPL", AssetType: models.AssetStock, TxnType: models.TxnBuy, Units: dec("10"), Price: dec("100")},
	}
	svc := &PortfolioService{
		Repo:   repo,
		Quotes: fixedQuotes{"AAPL": dec("120")},
	}

	positions, summary, err := svc.Holdings(context.Background(), 7)
	if err != nil {
		t.Fatalf("holdings: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("positions=%d want 1", len(positions))
	}
	p := positions[0]
	if p.Last == nil || !p.Last.Equal(dec("120")) {
		t.Fatalf("last=%v want 120", p.Last)
	}
	if p.Value == nil || !p.Value.Equal(dec("1200")) {
		t.Fatalf("value=%v want 1200", p.Value)
	}
	if !summary.TotalInvested.Equal(dec("1000")) {
		t.Fatalf("invested=%s want 1000", summary.TotalInvested)
	}
	if !summary.TotalPnL.Equal(dec("200")) {
		t.Fatalf("pnl=%s want 200", summary.TotalPnL)
	}
}

func TestHoldings_NoQuoteSource(t *testing.T) {
	repo := newStubRepo()
	repo.transactions[1] = []models.Transaction{
		{UserID: 1, Date: "2026-01-05", Symbol: "MSFT", AssetType: models.AssetStock, TxnType: models.TxnBuy, Units: dec("5"), Price: dec("300")},
	}
	svc := &PortfolioService{Repo: repo}

	positions, summary, err := svc.Holdings(context.Background(), 1)
	if err != nil {
		t.Fatalf("holdings: %v", err)
	}
	if positions[0].Last != nil || positions[0].Value != nil {
		t.Fatalf("expected unpriced position without a quote source")
	}
	if !summary.TotalValue.IsZero() {
		t.Fatalf("total value=%s want 0", summary.TotalValue)
	}
	if !summary.TotalInvested.Equal(dec("1500")) {
		t.Fatalf("invested=%s want 1500", summary.TotalInvested)
	}
}

func TestSnapshotPortfolios(t *testing.T) {
	repo := newStubRepo()
	repo.transactions[3] = []models.Transaction{
		{UserID: 3, Date: "2026-02-01", Symbol: "AAPL", AssetType: models.AssetStock, TxnType: models.TxnBuy, Units: dec("2"), Price: dec("100")},
	}
	repo.transactions[4] = []models.Transaction{
		{UserID: 4, Date: "2026-02-01", Symbol: "AAPL", AssetType: models.AssetStock, TxnType: models.TxnBuy, Units: dec("1"), Price: dec("100")},
	}
	svc := &PortfolioService{
		Repo:   repo,
		Quotes: fixedQuotes{"AAPL": dec("110")},
	}

	if err := svc.SnapshotPortfolios(context.Background()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(repo.snapshots) != 2 {
		t.Fatalf("snapshots=%d want 2", len(repo.snapshots))
	}
	for _, snap := range repo.snapshots {
		if snap.Positions != 1 {
			t.Fatalf("positions=%d want 1", snap.Positions)
		}
		if snap.SnapshotAt.IsZero() {
			t.Fatalf("snapshot_at is zero")
		}
	}
}

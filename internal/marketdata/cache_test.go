package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type countingSource struct {
	calls   int
	batches [][]string
	prices  map[string]Quote
}

func (s *countingSource) GetLatestPrices(ctx context.Context, symbols []string) map[string]Quote {
	s.calls++
	s.batches = append(s.batches, symbols)
	out := make(map[string]Quote, len(symbols))
	for _, sym := range symbols {
		if q, ok := s.prices[sym]; ok {
			out[sym] = q
		}
	}
	return out
}

func quoteAt(price string) Quote {
	d, _ := decimal.NewFromString(price)
	return Quote{Last: &d}
}

func TestQuoteCache_ServesWithinTTL(t *testing.T) {
	src := &countingSource{prices: map[string]Quote{"AAPL": quoteAt("100")}}
	cache := NewQuoteCache(src, time.Minute)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	cache.Now = func() time.Time { return now }

	cache.GetLatestPrices(context.Background(), []string{"AAPL"})
	cache.GetLatestPrices(context.Background(), []string{"AAPL"})
	if src.calls != 1 {
		t.Fatalf("source calls=%d want 1", src.calls)
	}

	now = now.Add(61 * time.Second)
	cache.GetLatestPrices(context.Background(), []string{"AAPL"})
	if src.calls != 2 {
		t.Fatalf("source calls=%d want 2 after TTL expiry", src.calls)
	}
}

func TestQuoteCache_FetchesOnlyMissing(t *testing.T) {
	src := &countingSource{prices: map[string]Quote{
		"AAPL": quoteAt("100"),
		"MSFT": quoteAt("300"),
	}}
	cache := NewQuoteCache(src, time.Minute)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	cache.Now = func() time.Time { return now }

	cache.GetLatestPrices(context.Background(), []string{"AAPL"})
	got := cache.GetLatestPrices(context.Background(), []string{"AAPL", "MSFT"})
	if len(got) != 2 {
		t.Fatalf("quotes=%d want 2", len(got))
	}
	if src.calls != 2 {
		t.Fatalf("source calls=%d want 2", src.calls)
	}
	second := src.batches[1]
	if len(second) != 1 || second[0] != "MSFT" {
		t.Fatalf("second batch=%v want [MSFT]", second)
	}
}

func TestQuoteCache_UnresolvedStaysUncached(t *testing.T) {
	src := &countingSource{prices: map[string]Quote{}}
	cache := NewQuoteCache(src, time.Minute)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	cache.Now = func() time.Time { return now }

	cache.GetLatestPrices(context.Background(), []string{"GONE"})
	cache.GetLatestPrices(context.Background(), []string{"GONE"})
	if src.calls != 2 {
		t.Fatalf("source calls=%d want 2 (misses are retried)", src.calls)
	}
}

package marketdata

import (
	"context"
	"sync"
	"time"
)

// QuoteSource is the batched lookup the cache sits in front of.
type QuoteSource interface {
	GetLatestPrices(ctx context.Context, symbols []string) map[string]Quote
}

type cacheEntry struct {
	quote     Quote
	fetchedAt time.Time
}

// QuoteCache keeps quote snapshots warm for TTL so repeated holdings and
// watchlist reads do not hammer the rate-limited upstream. Staleness is
// decided here, not by the holdings engine, which only ever sees a snapshot.
type QuoteCache struct {
	Source QuoteSource
	TTL    time.Duration

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewQuoteCache(source QuoteSource, ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		Source:  source,
		TTL:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *QuoteCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// GetLatestPrices serves fresh entries from the cache and fetches only the
// stale or unknown remainder in one upstream batch. Symbols the source cannot
// resolve stay uncached so they are retried on the next call.
func (c *QuoteCache) GetLatestPrices(ctx context.Context, symbols []string) map[string]Quote {
	if c == nil || c.Source == nil {
		return map[string]Quote{}
	}
	now := c.now()
	out := make(map[string]Quote, len(symbols))
	missing := make([]string, 0, len(symbols))

	c.mu.RLock()
	for _, s := range symbols {
		entry, ok := c.entries[s]
		if ok && now.Sub(entry.fetchedAt) < c.TTL {
			out[s] = entry.quote
			continue
		}
		missing = append(missing, s)
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return out
	}

	fetched := c.Source.GetLatestPrices(ctx, missing)
	c.mu.Lock()
	for s, q := range fetched {
		c.entries[s] = cacheEntry{quote: q, fetchedAt: now}
		out[s] = q
	}
	c.mu.Unlock()
	return out
}

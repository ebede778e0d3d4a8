package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func rssBody(items ...string) string {
	body := `<?xml version="1.0"?><rss version="2.0"><channel><title>Test Feed</title>`
	for i, title := range items {
		body += fmt.Sprintf(`<item><title>%s</title><link>https://example.com/%d</link><pubDate>Thu, 27 Aug 2026 0%d:00:00 GMT</pubDate></item>`, title, i, i)
	}
	return body + `</channel></rss>`
}

func TestNewsCategory_MergesAndDedupes(t *testing.T) {
	feedA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, rssBody("Rates hold steady", "Shared headline"))
	}))
	defer feedA.Close()
	feedB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, rssBody("SHARED HEADLINE", "Oil climbs"))
	}))
	defer feedB.Close()

	svc := &NewsService{
		Feeds:    map[string][]string{"markets": {feedA.URL, feedB.URL}},
		CacheTTL: time.Minute,
	}
	articles, err := svc.Category(context.Background(), "Markets")
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("articles=%d want 3 (case-insensitive title dedupe)", len(articles))
	}
	for i := 1; i < len(articles); i++ {
		pi, pj := articles[i-1].Published, articles[i].Published
		if pi != nil && pj != nil && pi.Before(*pj) {
			t.Fatalf("articles not sorted newest first")
		}
	}
}

func TestNewsCategory_CachesWithinTTL(t *testing.T) {
	var hits atomic.Int32
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, rssBody("Only story"))
	}))
	defer feed.Close()

	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	svc := &NewsService{
		Feeds:    map[string][]string{"crypto": {feed.URL}},
		CacheTTL: 10 * time.Minute,
		Now:      func() time.Time { return now },
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Category(context.Background(), "crypto"); err != nil {
			t.Fatalf("category: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("feed hits=%d want 1 within TTL", got)
	}

	now = now.Add(11 * time.Minute)
	if _, err := svc.Category(context.Background(), "crypto"); err != nil {
		t.Fatalf("category: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("feed hits=%d want 2 after TTL expiry", got)
	}
}

func TestNewsCategory_Unknown(t *testing.T) {
	svc := &NewsService{Feeds: map[string][]string{"markets": {"http://127.0.0.1:0/feed"}}}
	if _, err := svc.Category(context.Background(), "sports"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

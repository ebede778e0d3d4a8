package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// Article is one aggregated feed entry.
type Article struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Source    string     `json:"source"`
	Summary   string     `json:"summary,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}

type newsCacheEntry struct {
	articles  []Article
	fetchedAt time.Time
}

// NewsService aggregates RSS headlines per category. Results are cached per
// category for CacheTTL since feed endpoints throttle aggressively.
type NewsService struct {
	Feeds        map[string][]string
	Logger       *zap.Logger
	CacheTTL     time.Duration
	PerFeedLimit int
	FeedTimeout  time.Duration

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	cache map[string]newsCacheEntry
}

func (s *NewsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *NewsService) Categories() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Feeds))
	for c := range s.Feeds {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Category returns merged, de-duplicated headlines for one feed category,
// newest first. A category with no configured feeds is an error; a feed that
// fails to parse is skipped.
func (s *NewsService) Category(ctx context.Context, category string) ([]Article, error) {
	if s == nil {
		return nil, fmt.Errorf("news service not configured")
	}
	category = strings.ToLower(strings.TrimSpace(category))
	urls, ok := s.Feeds[category]
	if !ok || len(urls) == 0 {
		return nil, fmt.Errorf("unknown news category %q", category)
	}

	now := s.now()
	s.mu.Lock()
	if entry, ok := s.cache[category]; ok && now.Sub(entry.fetchedAt) < s.CacheTTL {
		s.mu.Unlock()
		return entry.articles, nil
	}
	s.mu.Unlock()

	articles := s.fetch(ctx, urls)

	s.mu.Lock()
	if s.cache == nil {
		s.cache = make(map[string]newsCacheEntry)
	}
	s.cache[category] = newsCacheEntry{articles: articles, fetchedAt: now}
	s.mu.Unlock()
	return articles, nil
}

func (s *NewsService) fetch(ctx context.Context, urls []string) []Article {
	limit := s.PerFeedLimit
	if limit <= 0 {
		limit = 12
	}
	timeout := s.FeedTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	parser := gofeed.NewParser()

	seen := make(map[string]struct{})
	articles := make([]Article, 0, limit*len(urls))
	for _, feedURL := range urls {
		if ctx.Err() != nil {
			break
		}
		feedCtx, cancel := context.WithTimeout(ctx, timeout)
		feed, err := parser.ParseURLWithContext(feedURL, feedCtx)
		cancel()
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("news feed fetch failed", zap.String("url", feedURL), zap.Error(err))
			}
			continue
		}
		count := 0
		for _, item := range feed.Items {
			if count >= limit {
				break
			}
			title := strings.TrimSpace(item.Title)
			if title == "" {
				continue
			}
			key := strings.ToLower(title)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			articles = append(articles, Article{
				Title:     title,
				Link:      item.Link,
				Source:    strings.TrimSpace(feed.Title),
				Summary:   strings.TrimSpace(item.Description),
				Published: item.PublishedParsed,
			})
			count++
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		pi, pj := articles[i].Published, articles[j].Published
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return pi.After(*pj)
		}
	})
	return articles
}

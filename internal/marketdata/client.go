// Package marketdata talks to the Yahoo Finance chart API: latest quote
// snapshots for the holdings and watchlist pages, and candle history for the
// chart pages.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultHost = "https://query2.finance.yahoo.com"

type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	host = strings.TrimRight(host, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		host:       host,
		httpClient: httpClient,
	}
}

// Quote is a snapshot for one symbol. Fields are nil when the chart carries
// fewer than the required bars.
type Quote struct {
	Symbol string           `json:"symbol"`
	Last   *decimal.Decimal `json:"last,omitempty"`
	Prev   *decimal.Decimal `json:"prev,omitempty"`
	Chg    *decimal.Decimal `json:"chg,omitempty"`
	ChgPct *decimal.Decimal `json:"chg_pct,omitempty"`
}

// Candle is one history bar. Fields other than Time may be nil where the
// exchange reported no trade for the bar.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   *float64  `json:"open"`
	High   *float64  `json:"high"`
	Low    *float64  `json:"low"`
	Close  *float64  `json:"close"`
	Volume *float64  `json:"volume"`
}

// Ranges maps a history range label to the (range, interval) pair the chart
// API expects.
var Ranges = map[string][2]string{
	"1d":  {"5d", "30m"},
	"5d":  {"1mo", "1h"},
	"1mo": {"1mo", "1d"},
	"3mo": {"3mo", "1d"},
	"6mo": {"6mo", "1d"},
	"1y":  {"1y", "1d"},
	"3y":  {"3y", "1wk"},
	"5y":  {"5y", "1wk"},
	"max": {"max", "1mo"},
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "prs-finsight/1.0")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// GetQuote fetches last and previous close for one symbol from the daily
// chart.
func (c *Client) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, fmt.Errorf("symbol is required")
	}
	query := url.Values{}
	query.Set("range", "5d")
	query.Set("interval", "1d")
	body, err := c.doRequest(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query)
	if err != nil {
		return Quote{}, err
	}

	var raw chartResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return Quote{}, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if len(raw.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no chart result for %s", symbol)
	}
	r := raw.Chart.Result[0]

	closes := make([]float64, 0, len(r.Timestamp))
	if len(r.Indicators.Quote) > 0 {
		for _, v := range r.Indicators.Quote[0].Close {
			if v != nil && *v > 0 {
				closes = append(closes, *v)
			}
		}
	}

	q := Quote{Symbol: symbol}
	switch {
	case len(closes) > 0:
		last := decimal.NewFromFloat(closes[len(closes)-1])
		q.Last = &last
		if len(closes) > 1 {
			prev := decimal.NewFromFloat(closes[len(closes)-2])
			q.Prev = &prev
		}
	case r.Meta.RegularMarketPrice > 0:
		last := decimal.NewFromFloat(r.Meta.RegularMarketPrice)
		q.Last = &last
	default:
		return Quote{}, fmt.Errorf("no price data for %s", symbol)
	}

	if q.Last != nil && q.Prev != nil && q.Prev.IsPositive() {
		chg := q.Last.Sub(*q.Prev)
		q.Chg = &chg
		pct := q.Last.Div(*q.Prev).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
		q.ChgPct = &pct
	}
	return q, nil
}

// GetLatestPrices is the batched gateway boundary: one call resolves the whole
// symbol set, iterating the upstream per-symbol API internally. Symbols that
// fail to resolve are simply absent from the result; the batch never fails.
func (c *Client) GetLatestPrices(ctx context.Context, symbols []string) map[string]Quote {
	out := make(map[string]Quote, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(s))
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		if ctx.Err() != nil {
			break
		}
		q, err := c.GetQuote(ctx, symbol)
		if err != nil {
			continue
		}
		out[symbol] = q
	}
	return out
}

// History fetches candles for the chart pages. Unknown range labels fall back
// to six months of daily bars.
func (c *Client) History(ctx context.Context, symbol, rangeLabel string) ([]Candle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	pair, ok := Ranges[strings.ToLower(strings.TrimSpace(rangeLabel))]
	if !ok {
		pair = Ranges["6mo"]
	}
	query := url.Values{}
	query.Set("range", pair[0])
	query.Set("interval", pair[1])
	body, err := c.doRequest(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query)
	if err != nil {
		return nil, err
	}

	var raw chartResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if len(raw.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", symbol)
	}
	r := raw.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return []Candle{}, nil
	}
	q := r.Indicators.Quote[0]

	candles := make([]Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		c := Candle{Time: time.Unix(ts, 0).UTC()}
		if i < len(q.Open) {
			c.Open = q.Open[i]
		}
		if i < len(q.High) {
			c.High = q.High[i]
		}
		if i < len(q.Low) {
			c.Low = q.Low[i]
		}
		if i < len(q.Close) {
			c.Close = q.Close[i]
		}
		if i < len(q.Volume) {
			c.Volume = q.Volume[i]
		}
		candles = append(candles, c)
	}
	return candles, nil
}

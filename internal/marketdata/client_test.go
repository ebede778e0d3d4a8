package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"meta":{"regularMarketPrice":111.5,"regularMarketTime":1756300000},
"timestamp":[1756100000,1756200000,1756300000],
"indicators":{"quote":[{"open":[100,101,null],"high":[102,103,null],"low":[99,100,null],
"close":[100.5,110.0,111.5],"volume":[1000,1200,900]}]}}],"error":null}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL)
}

func TestGetQuote_ParsesLastAndPrev(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		require.Equal(t, "5d", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartBody)
	})

	q, err := client.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)
	require.Equal(t, "AAPL", q.Symbol)
	require.NotNil(t, q.Last)
	require.Equal(t, "111.5", q.Last.String())
	require.NotNil(t, q.Prev)
	require.Equal(t, "110", q.Prev.String())
	require.NotNil(t, q.Chg)
	require.Equal(t, "1.5", q.Chg.String())
}

func TestGetQuote_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	})

	_, err := client.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "want *APIError, got %T", err)
	require.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestGetLatestPrices_AbsorbsPerSymbolFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v8/finance/chart/BAD" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, chartBody)
	})

	got := client.GetLatestPrices(context.Background(), []string{"AAPL", "BAD", "aapl"})
	require.Len(t, got, 1)
	require.Contains(t, got, "AAPL")
}

func TestHistory_ParsesCandles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1y", r.URL.Query().Get("range"))
		require.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartBody)
	})

	candles, err := client.History(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	require.Len(t, candles, 3)
	require.NotNil(t, candles[1].Close)
	require.Equal(t, 110.0, *candles[1].Close)
	// Nulls in the bar arrays stay nil.
	require.Nil(t, candles[2].Open)
}

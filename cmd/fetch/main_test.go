package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"fmpocket/internal/aggregate"
	"fmpocket/internal/config"
	"fmpocket/internal/provider/fmp"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *fmp.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := fmp.New("test-key", fmp.WithBaseURL(server.URL+"/"))
	require.NoError(t, err)
	return client
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestPerSymbol(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stable/quote-short", r.URL.Path)
		symbol := r.URL.Query().Get("symbol")
		_ = json.NewEncoder(w).Encode([]any{map[string]any{
			"symbol": symbol, "price": 1.5, "change": 0.1, "volume": 10,
		}})
	})

	out, err := perSymbol(t.Context(), client, symbolCalls["short"], options{
		endpoint: "short",
		symbols:  []string{"AAPL", "MSFT"},
	}, discard())
	require.NoError(t, err)
	require.Len(t, out, 2)

	quotes, ok := out["MSFT"].([]fmp.ShortQuote)
	require.True(t, ok)
	require.Equal(t, "MSFT", quotes[0].Symbol)
}

func TestPerSymbol_FirstErrorWins(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "BAD" {
			w.WriteHeader(http.StatusPaymentRequired)
			return
		}
		_ = json.NewEncoder(w).Encode([]any{})
	})

	_, err := perSymbol(t.Context(), client, symbolCalls["quote"], options{
		endpoint: "quote",
		symbols:  []string{"AAPL", "BAD"},
	}, discard())
	require.ErrorIs(t, err, fmp.ErrHTTP)
	require.ErrorContains(t, err, "BAD: ")
}

func TestPerSymbol_ErrNoSymbols(t *testing.T) {
	t.Parallel()

	_, err := perSymbol(t.Context(), nil, symbolCalls["quote"], options{endpoint: "quote"}, discard())
	require.ErrorContains(t, err, "needs -symbols")
}

func TestLatestQuotes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stable/batch-quote", r.URL.Path)
		require.Equal(t, "AAPL,MSFT", r.URL.Query().Get("symbols"))
		_ = json.NewEncoder(w).Encode([]any{
			quoteRecord("MSFT", "NASDAQ", 402.1),
			quoteRecord("AAPL", "NASDAQ", 187.5),
		})
	})

	cfg := config.Default()
	got, err := latestQuotes(t.Context(), cfg, client, options{symbols: []string{"AAPL", "MSFT"}, sides: true}, discard())
	require.NoError(t, err)
	require.Equal(t, []aggregate.Latest{
		{Symbol: "AAPL", Exchange: "NASDAQ", Side: "last", Currency: "USD", Price: "187.5", Provider: "FMP", ReceivedAt: got[0].ReceivedAt},
		{Symbol: "MSFT", Exchange: "NASDAQ", Side: "last", Currency: "USD", Price: "402.1", Provider: "FMP", ReceivedAt: got[1].ReceivedAt},
	}, got)
}

func TestEndpointNames(t *testing.T) {
	t.Parallel()

	names := endpointNames()
	require.True(t, sort.StringsAreSorted(names))
	require.Contains(t, names, "latest-quotes")
	require.Contains(t, names, "indicator")
	require.Contains(t, names, "raw")
	require.Len(t, names, len(symbolCalls)+len(calls)+1)
}

func quoteRecord(symbol, exchange string, price float64) map[string]any {
	return map[string]any{
		"symbol": symbol, "name": symbol, "exchange": exchange, "price": price,
		"changePercentage": 0, "change": 0, "volume": 0, "dayLow": 0, "dayHigh": 0,
		"yearHigh": 0, "yearLow": 0, "marketCap": 1e12, "priceAvg50": 0, "priceAvg200": 0,
		"open": 0, "previousClose": 0, "timestamp": 1704200000,
	}
}

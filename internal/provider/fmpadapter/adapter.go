package fmpadapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fmpocket/internal/provider"
	"fmpocket/internal/provider/fmp"
)

// QuoteClient is the part of the FMP client the adapter needs.
type QuoteClient interface {
	BatchQuote(ctx context.Context, symbols []string) ([]fmp.Quote, error)
	BatchAftermarketQuote(ctx context.Context, symbols []string) ([]fmp.AftermarketQuote, error)
}

type Config struct {
	Name     string // display name, default: FMP
	Currency string // FMP quotes carry no currency, default: USD
	// Aftermarket adds bid and ask quotes from the aftermarket endpoint.
	Aftermarket bool
}

type Adapter struct {
	cfg    Config
	client QuoteClient
}

func New(cfg Config, client QuoteClient) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "FMP"
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// Fetch returns one "last" quote per symbol, plus "bid" and "ask" quotes when
// aftermarket quotes are enabled. Sources read Name:exchange:side.
func (a *Adapter) Fetch(ctx context.Context, symbols []string) ([]provider.Quote, error) {
	quotes, err := a.client.BatchQuote(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("batch quote: %w", err)
	}

	now := time.Now().UTC()
	exchanges := make(map[string]string, len(quotes))
	out := make([]provider.Quote, 0, len(quotes)*3)

	emit := func(symbol, exchange, side string, price, ts float64) {
		p := formatFloat(price)
		if p == "" {
			return
		}
		out = append(out, provider.Quote{
			Symbol:     symbol,
			Price:      p,
			Currency:   a.cfg.Currency,
			Source:     fmt.Sprintf("%s:%s:%s", a.cfg.Name, exchange, side),
			ReceivedAt: unixTime(ts, now),
		})
	}

	for _, q := range quotes {
		exchanges[q.Symbol] = q.Exchange
		emit(q.Symbol, q.Exchange, "last", q.Price, q.Timestamp)
	}

	if !a.cfg.Aftermarket || len(quotes) == 0 {
		return out, nil
	}
	after, err := a.client.BatchAftermarketQuote(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("batch aftermarket quote: %w", err)
	}
	for _, q := range after {
		exchange := exchanges[q.Symbol]
		emit(q.Symbol, exchange, "bid", q.BidPrice, q.Timestamp)
		emit(q.Symbol, exchange, "ask", q.AskPrice, q.Timestamp)
	}
	return out, nil
}

// unixTime reads seconds or milliseconds since the epoch. Zero falls back to now.
func unixTime(ts float64, now time.Time) time.Time {
	switch {
	case ts <= 0:
		return now
	case ts >= 1e12:
		return time.UnixMilli(int64(ts)).UTC()
	default:
		return time.Unix(int64(ts), 0).UTC()
	}
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	switch strings.ToLower(s) {
	case "inf", "+inf", "-inf", "nan":
		return ""
	}
	return s
}

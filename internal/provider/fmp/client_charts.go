package fmp

import (
	"context"
	"time"
)

// ChartParams selects an end-of-day series. Zero dates are omitted.
type ChartParams struct {
	Symbol string
	From   time.Time
	To     time.Time
}

// IntradayParams selects an intraday series.
type IntradayParams struct {
	Symbol   string
	Interval Interval
	From     time.Time
	To       time.Time
	// NonAdjusted defaults to true when nil.
	NonAdjusted *bool
}

// LightChart retrieves end-of-day prices and volumes between two dates.
func (c *Client) LightChart(ctx context.Context, p ChartParams) ([]LightChartPoint, error) {
	params, err := p.params("LightChart")
	if err != nil {
		return nil, err
	}
	return fetch[LightChartPoint](ctx, c, "/historical-price-eod/light", LightChartShape, params)
}

// FullChart retrieves end-of-day OHLCV bars between two dates.
func (c *Client) FullChart(ctx context.Context, p ChartParams) ([]FullChartPoint, error) {
	params, err := p.params("FullChart")
	if err != nil {
		return nil, err
	}
	return fetch[FullChartPoint](ctx, c, "/historical-price-eod/full", FullChartShape, params)
}

// IntradayChart retrieves intraday bars of the given interval.
func (c *Client) IntradayChart(ctx context.Context, p IntradayParams) ([]IntradayBar, error) {
	symbol, err := requireSymbol("IntradayChart", p.Symbol)
	if err != nil {
		return nil, err
	}
	if p.Interval == "" {
		return nil, required("IntradayChart", "interval")
	}
	if !intradayIntervals[p.Interval] {
		return nil, &ArgumentError{Method: "IntradayChart", Argument: "interval", Reason: "must be one of 1min, 5min, 15min, 30min, 1hour, 4hour"}
	}
	nonAdjusted := true
	if p.NonAdjusted != nil {
		nonAdjusted = *p.NonAdjusted
	}
	return fetch[IntradayBar](ctx, c, "/historical-chart/"+string(p.Interval), IntradayChartShape, Params{
		"symbol":      symbol,
		"from":        p.From,
		"to":          p.To,
		"nonadjusted": nonAdjusted,
	})
}

func (p ChartParams) params(method string) (Params, error) {
	symbol, err := requireSymbol(method, p.Symbol)
	if err != nil {
		return nil, err
	}
	return Params{"symbol": symbol, "from": p.From, "to": p.To}, nil
}

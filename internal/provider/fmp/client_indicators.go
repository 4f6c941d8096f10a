package fmp

import (
	"context"
	"encoding/json"
	"time"
)

// IndicatorParams selects a technical indicator series.
type IndicatorParams struct {
	Symbol       string
	PeriodLength int
	// Timeframe is an intraday interval or Interval1Day.
	Timeframe Interval
	From      time.Time
	To        time.Time
}

// TechnicalIndicator retrieves the series of indicator ind.
func (c *Client) TechnicalIndicator(ctx context.Context, ind Indicator, p IndicatorParams) ([]IndicatorPoint, error) {
	method := string(ind)
	shape := IndicatorShape(ind)
	if shape == nil {
		return nil, &ArgumentError{Method: "TechnicalIndicator", Argument: "indicator", Reason: "is not supported: " + method}
	}
	symbol, err := requireSymbol(method, p.Symbol)
	if err != nil {
		return nil, err
	}
	if p.PeriodLength <= 0 {
		return nil, &ArgumentError{Method: method, Argument: "periodLength", Reason: "must be positive"}
	}
	if p.Timeframe == "" {
		return nil, required(method, "timeframe")
	}
	if p.Timeframe != Interval1Day && !intradayIntervals[p.Timeframe] {
		return nil, &ArgumentError{Method: method, Argument: "timeframe", Reason: "is not a known interval: " + string(p.Timeframe)}
	}

	endpoint := ind.Path()
	rows, err := fetch[map[string]json.RawMessage](ctx, c, endpoint, shape, Params{
		"symbol":       symbol,
		"periodLength": p.PeriodLength,
		"timeframe":    p.Timeframe,
		"from":         p.From,
		"to":           p.To,
	})
	if err != nil {
		return nil, err
	}

	points := make([]IndicatorPoint, 0, len(rows))
	for _, row := range rows {
		var bar IntradayBar
		b, err := json.Marshal(row)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: err}
		}
		if err := json.Unmarshal(b, &bar); err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: err}
		}
		point := IndicatorPoint{
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		}
		if v, ok := row[string(ind)]; ok {
			if err := json.Unmarshal(v, &point.Value); err != nil {
				return nil, &ParseError{Endpoint: endpoint, Err: err}
			}
		}
		points = append(points, point)
	}
	return points, nil
}

// SMA retrieves the simple moving average.
func (c *Client) SMA(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, SMA, p)
}

// EMA retrieves the exponential moving average.
func (c *Client) EMA(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, EMA, p)
}

// WMA retrieves the weighted moving average.
func (c *Client) WMA(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, WMA, p)
}

// DEMA retrieves the double exponential moving average.
func (c *Client) DEMA(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, DEMA, p)
}

// TEMA retrieves the triple exponential moving average.
func (c *Client) TEMA(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, TEMA, p)
}

// RSI retrieves the relative strength index.
func (c *Client) RSI(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, RSI, p)
}

// StandardDeviation retrieves the rolling standard deviation.
func (c *Client) StandardDeviation(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, StandardDeviation, p)
}

// Williams retrieves the Williams %R oscillator.
func (c *Client) Williams(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, Williams, p)
}

// ADX retrieves the average directional index.
func (c *Client) ADX(ctx context.Context, p IndicatorParams) ([]IndicatorPoint, error) {
	return c.TechnicalIndicator(ctx, ADX, p)
}

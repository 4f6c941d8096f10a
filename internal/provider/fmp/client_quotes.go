package fmp

import (
	"context"
	"strings"
)

// Quote retrieves the current quote of a stock, forex or crypto symbol.
func (c *Client) Quote(ctx context.Context, symbol string) ([]Quote, error) {
	symbol, err := requireSymbol("Quote", symbol)
	if err != nil {
		return nil, err
	}
	return fetch[Quote](ctx, c, "/quote", QuoteShape, Params{"symbol": symbol})
}

// ShortQuote retrieves the current short quote of a symbol.
func (c *Client) ShortQuote(ctx context.Context, symbol string) ([]ShortQuote, error) {
	symbol, err := requireSymbol("ShortQuote", symbol)
	if err != nil {
		return nil, err
	}
	return fetch[ShortQuote](ctx, c, "/quote-short", ShortQuoteShape, Params{"symbol": symbol})
}

// BatchQuote retrieves quotes for several symbols in one request. An empty
// list returns no quotes without a request.
func (c *Client) BatchQuote(ctx context.Context, symbols []string) ([]Quote, error) {
	list := symbolList(symbols)
	if len(list) == 0 {
		return []Quote{}, nil
	}
	return fetch[Quote](ctx, c, "/batch-quote", QuoteShape, Params{"symbols": list})
}

// BatchShortQuote retrieves short quotes for several symbols.
func (c *Client) BatchShortQuote(ctx context.Context, symbols []string) ([]ShortQuote, error) {
	list := symbolList(symbols)
	if len(list) == 0 {
		return []ShortQuote{}, nil
	}
	return fetch[ShortQuote](ctx, c, "/batch-quote-short", ShortQuoteShape, Params{"symbols": list})
}

// BatchAftermarketQuote retrieves bid/ask quotes outside regular trading hours.
func (c *Client) BatchAftermarketQuote(ctx context.Context, symbols []string) ([]AftermarketQuote, error) {
	list := symbolList(symbols)
	if len(list) == 0 {
		return []AftermarketQuote{}, nil
	}
	return fetch[AftermarketQuote](ctx, c, "/batch-aftermarket-quote", AftermarketQuoteShape, Params{"symbols": list})
}

// PriceChange retrieves the price change of a symbol over standard horizons.
func (c *Client) PriceChange(ctx context.Context, symbol string) ([]PriceChange, error) {
	symbol, err := requireSymbol("PriceChange", symbol)
	if err != nil {
		return nil, err
	}
	return fetch[PriceChange](ctx, c, "/stock-price-change", PriceChangeShape, Params{"symbol": symbol})
}

func requireSymbol(method, symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", required(method, "symbol")
	}
	return symbol, nil
}

// symbolList drops blank entries.
func symbolList(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

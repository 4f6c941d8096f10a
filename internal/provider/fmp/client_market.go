package fmp

import (
	"context"
	"strings"
)

// ListStock lists the stocks tracked by the vendor's index list.
func (c *Client) ListStock(ctx context.Context) ([]StockListing, error) {
	return fetch[StockListing](ctx, c, "/index-list", StockListShape, nil)
}

// ListCrypto lists the cryptocurrencies traded on exchanges worldwide.
func (c *Client) ListCrypto(ctx context.Context) ([]CryptoListing, error) {
	return fetch[CryptoListing](ctx, c, "/cryptocurrency-list", CryptoListShape, nil)
}

// ListForex lists the currency pairs traded on the forex market.
func (c *Client) ListForex(ctx context.Context) ([]ForexPair, error) {
	return fetch[ForexPair](ctx, c, "/forex-list", ForexListShape, nil)
}

// ListCommodities lists the tracked commodities.
func (c *Client) ListCommodities(ctx context.Context) ([]Commodity, error) {
	return fetch[Commodity](ctx, c, "/commodities-list", CommodityListShape, nil)
}

// MarketHours retrieves the trading hours of an exchange.
func (c *Client) MarketHours(ctx context.Context, exchange string) ([]MarketHours, error) {
	if exchange = strings.TrimSpace(exchange); exchange == "" {
		return nil, required("MarketHours", "exchange")
	}
	return fetch[MarketHours](ctx, c, "/exchange-market-hours", MarketHoursShape, Params{"exchange": exchange})
}

// Holidays retrieves the holidays of an exchange.
func (c *Client) Holidays(ctx context.Context, exchange string) ([]Holiday, error) {
	if exchange = strings.TrimSpace(exchange); exchange == "" {
		return nil, required("Holidays", "exchange")
	}
	return fetch[Holiday](ctx, c, "/holidays-by-exchange", HolidaysShape, Params{"exchange": exchange})
}

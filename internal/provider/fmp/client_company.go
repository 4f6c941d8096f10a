package fmp

import (
	"context"
	"strings"
)

// SearchBy selects what Search matches against.
type SearchBy string

const (
	SearchByName   SearchBy = "name"
	SearchBySymbol SearchBy = "symbol"
)

// SearchParams filters a symbol search. Limit and Exchange are optional.
type SearchParams struct {
	Query    string
	By       SearchBy
	Limit    int
	Exchange string
}

// ProfileParams identifies a company by symbol or by CIK. Symbol wins when
// both are set.
type ProfileParams struct {
	Symbol string
	CIK    string
}

// SymbolParams selects a symbol with an optional record limit.
type SymbolParams struct {
	Symbol string
	Limit  int
}

// Search finds symbols by name or ticker. An empty query returns no results
// without a request.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	query := strings.TrimSpace(p.Query)
	if query == "" {
		return []SearchResult{}, nil
	}
	by := p.By
	if by == "" {
		by = SearchByName
	}
	if by != SearchByName && by != SearchBySymbol {
		return nil, &ArgumentError{Method: "Search", Argument: "by", Reason: `must be "name" or "symbol"`}
	}
	return fetch[SearchResult](ctx, c, "/search-"+string(by), SearchShape, Params{
		"query":    query,
		"limit":    optInt(p.Limit),
		"exchange": optString(p.Exchange),
	})
}

// CompanyProfile retrieves a company profile by symbol or, failing that, by
// CIK.
func (c *Client) CompanyProfile(ctx context.Context, p ProfileParams) ([]CompanyProfile, error) {
	symbol := strings.TrimSpace(p.Symbol)
	cik := strings.TrimSpace(p.CIK)
	switch {
	case symbol != "":
		return fetch[CompanyProfile](ctx, c, "/profile", CompanyProfileShape, Params{"symbol": symbol})
	case cik != "":
		return fetch[CompanyProfile](ctx, c, "/profile-cik", CompanyProfileShape, Params{"cik": cik})
	}
	return nil, &ArgumentError{Method: "CompanyProfile", Argument: "symbol or CIK"}
}

// EmployeeCount retrieves the latest reported workforce of a company.
func (c *Client) EmployeeCount(ctx context.Context, p SymbolParams) ([]EmployeeCount, error) {
	params, err := p.params("EmployeeCount")
	if err != nil {
		return nil, err
	}
	return fetch[EmployeeCount](ctx, c, "/employee-count", EmployeeCountShape, params)
}

// EmployeeHistoryCount retrieves the workforce history of a company.
func (c *Client) EmployeeHistoryCount(ctx context.Context, p SymbolParams) ([]EmployeeCount, error) {
	params, err := p.params("EmployeeHistoryCount")
	if err != nil {
		return nil, err
	}
	return fetch[EmployeeCount](ctx, c, "/historical-employee-count", EmployeeCountShape, params)
}

// MarketCap retrieves the market capitalization of a company.
func (c *Client) MarketCap(ctx context.Context, p SymbolParams) ([]MarketCap, error) {
	params, err := p.params("MarketCap")
	if err != nil {
		return nil, err
	}
	return fetch[MarketCap](ctx, c, "/market-capitalization", MarketCapShape, params)
}

// BatchMarketCap retrieves the market capitalization of several companies.
func (c *Client) BatchMarketCap(ctx context.Context, symbols []string) ([]MarketCap, error) {
	list := symbolList(symbols)
	if len(list) == 0 {
		return []MarketCap{}, nil
	}
	return fetch[MarketCap](ctx, c, "/market-capitalization-batch", MarketCapShape, Params{"symbols": list})
}

func (p SymbolParams) params(method string) (Params, error) {
	symbol, err := requireSymbol(method, p.Symbol)
	if err != nil {
		return nil, err
	}
	return Params{"symbol": symbol, "limit": optInt(p.Limit)}, nil
}

// optInt treats non-positive values as absent.
func optInt(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}

func optString(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}

package fmp

import "context"

// StatementParams selects the fundamentals of a company.
type StatementParams struct {
	Symbol string
	Limit  int
	Period Period
}

// PageParams pages through the latest statements. Page 0 is the vendor
// default and is not sent.
type PageParams struct {
	Page  int
	Limit int
}

// KeyMetrics retrieves the key financial metrics of a company.
func (c *Client) KeyMetrics(ctx context.Context, p StatementParams) ([]Metrics, error) {
	params, err := p.params("KeyMetrics")
	if err != nil {
		return nil, err
	}
	return fetch[Metrics](ctx, c, "/key-metrics", KeyMetricsShape, params)
}

// Ratios retrieves the financial ratios of a company.
func (c *Client) Ratios(ctx context.Context, p StatementParams) ([]Metrics, error) {
	params, err := p.params("Ratios")
	if err != nil {
		return nil, err
	}
	return fetch[Metrics](ctx, c, "/ratios", RatiosShape, params)
}

// Latest retrieves the most recently published financial statements.
func (c *Client) Latest(ctx context.Context, p PageParams) ([]StatementEntry, error) {
	return fetch[StatementEntry](ctx, c, "/latest-financial-statements", StatementShape, Params{
		"page":  optInt(p.Page),
		"limit": optInt(p.Limit),
	})
}

// Income retrieves income statements.
func (c *Client) Income(ctx context.Context, p StatementParams) ([]StatementEntry, error) {
	params, err := p.params("Income")
	if err != nil {
		return nil, err
	}
	return fetch[StatementEntry](ctx, c, "/income-statement", StatementShape, params)
}

// BalanceSheet retrieves balance sheet statements.
func (c *Client) BalanceSheet(ctx context.Context, p StatementParams) ([]StatementEntry, error) {
	params, err := p.params("BalanceSheet")
	if err != nil {
		return nil, err
	}
	return fetch[StatementEntry](ctx, c, "/balance-sheet-statement", StatementShape, params)
}

// CashFlow retrieves cash flow statements.
func (c *Client) CashFlow(ctx context.Context, p StatementParams) ([]StatementEntry, error) {
	params, err := p.params("CashFlow")
	if err != nil {
		return nil, err
	}
	return fetch[StatementEntry](ctx, c, "/cash-flow-statement", StatementShape, params)
}

func (p StatementParams) params(method string) (Params, error) {
	symbol, err := requireSymbol(method, p.Symbol)
	if err != nil {
		return nil, err
	}
	params := Params{"symbol": symbol, "limit": optInt(p.Limit)}
	if p.Period != "" {
		params["period"] = p.Period
	}
	return params, nil
}

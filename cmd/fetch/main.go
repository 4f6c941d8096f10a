package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fmpocket/internal/aggregate"
	"fmpocket/internal/config"
	"fmpocket/internal/logging"
	"fmpocket/internal/provider"
	"fmpocket/internal/provider/fmp"
	"fmpocket/internal/provider/fmpadapter"
)

type options struct {
	endpoint     string
	symbols      []string
	query        string
	by           string
	cik          string
	exchange     string
	from         time.Time
	to           time.Time
	interval     string
	indicator    string
	periodLength int
	period       string
	limit        int
	page         int
	path         string
	sides        bool
}

// symbolCall runs once per requested symbol.
type symbolCall func(ctx context.Context, c *fmp.Client, symbol string, o options) (any, error)

// call runs once per invocation.
type call func(ctx context.Context, c *fmp.Client, o options) (any, error)

var symbolCalls = map[string]symbolCall{
	"quote": func(ctx context.Context, c *fmp.Client, s string, _ options) (any, error) {
		return c.Quote(ctx, s)
	},
	"short": func(ctx context.Context, c *fmp.Client, s string, _ options) (any, error) {
		return c.ShortQuote(ctx, s)
	},
	"change": func(ctx context.Context, c *fmp.Client, s string, _ options) (any, error) {
		return c.PriceChange(ctx, s)
	},
	"light": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.LightChart(ctx, fmp.ChartParams{Symbol: s, From: o.from, To: o.to})
	},
	"full": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.FullChart(ctx, fmp.ChartParams{Symbol: s, From: o.from, To: o.to})
	},
	"intraday": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.IntradayChart(ctx, fmp.IntradayParams{Symbol: s, Interval: fmp.Interval(o.interval), From: o.from, To: o.to})
	},
	"indicator": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.TechnicalIndicator(ctx, fmp.Indicator(o.indicator), fmp.IndicatorParams{
			Symbol: s, PeriodLength: o.periodLength, Timeframe: fmp.Interval(o.interval), From: o.from, To: o.to,
		})
	},
	"profile": func(ctx context.Context, c *fmp.Client, s string, _ options) (any, error) {
		return c.CompanyProfile(ctx, fmp.ProfileParams{Symbol: s})
	},
	"employees": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.EmployeeCount(ctx, fmp.SymbolParams{Symbol: s, Limit: o.limit})
	},
	"employees-history": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.EmployeeHistoryCount(ctx, fmp.SymbolParams{Symbol: s, Limit: o.limit})
	},
	"market-cap": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.MarketCap(ctx, fmp.SymbolParams{Symbol: s, Limit: o.limit})
	},
	"key-metrics": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.KeyMetrics(ctx, o.statement(s))
	},
	"ratios": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.Ratios(ctx, o.statement(s))
	},
	"income": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.Income(ctx, o.statement(s))
	},
	"balance-sheet": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.BalanceSheet(ctx, o.statement(s))
	},
	"cash-flow": func(ctx context.Context, c *fmp.Client, s string, o options) (any, error) {
		return c.CashFlow(ctx, o.statement(s))
	},
}

var calls = map[string]call{
	"batch-quote": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.BatchQuote(ctx, o.symbols)
	},
	"batch-short": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.BatchShortQuote(ctx, o.symbols)
	},
	"batch-aftermarket": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.BatchAftermarketQuote(ctx, o.symbols)
	},
	"batch-market-cap": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.BatchMarketCap(ctx, o.symbols)
	},
	"search": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.Search(ctx, fmp.SearchParams{Query: o.query, By: fmp.SearchBy(o.by), Limit: o.limit, Exchange: o.exchange})
	},
	"profile-cik": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.CompanyProfile(ctx, fmp.ProfileParams{CIK: o.cik})
	},
	"list-stock": func(ctx context.Context, c *fmp.Client, _ options) (any, error) {
		return c.ListStock(ctx)
	},
	"list-crypto": func(ctx context.Context, c *fmp.Client, _ options) (any, error) {
		return c.ListCrypto(ctx)
	},
	"list-forex": func(ctx context.Context, c *fmp.Client, _ options) (any, error) {
		return c.ListForex(ctx)
	},
	"list-commodities": func(ctx context.Context, c *fmp.Client, _ options) (any, error) {
		return c.ListCommodities(ctx)
	},
	"market-hours": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.MarketHours(ctx, o.exchange)
	},
	"holidays": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.Holidays(ctx, o.exchange)
	},
	"latest-statements": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		return c.Latest(ctx, fmp.PageParams{Page: o.page, Limit: o.limit})
	},
	"raw": func(ctx context.Context, c *fmp.Client, o options) (any, error) {
		params := fmp.Params{}
		if len(o.symbols) == 1 {
			params["symbol"] = o.symbols[0]
		} else if len(o.symbols) > 1 {
			params["symbols"] = o.symbols
		}
		return c.Any(ctx, o.path, nil, params)
	},
}

func (o options) statement(symbol string) fmp.StatementParams {
	return fmp.StatementParams{Symbol: symbol, Limit: o.limit, Period: fmp.Period(o.period)}
}

func main() {
	var (
		o          options
		symbolsCSV string
		fromStr    string
		toStr      string
		configPath string
		timeout    int
	)

	flag.StringVar(&o.endpoint, "endpoint", "quote", "endpoint to call, see -list")
	flag.StringVar(&symbolsCSV, "symbols", os.Getenv("SYMBOLS"), "comma-separated symbols")
	flag.StringVar(&o.query, "query", "", "search query")
	flag.StringVar(&o.by, "by", string(fmp.SearchByName), "search by name or symbol")
	flag.StringVar(&o.cik, "cik", "", "company CIK for profile-cik")
	flag.StringVar(&o.exchange, "exchange", "", "exchange for market-hours, holidays and search")
	flag.StringVar(&fromStr, "from", "", "start day (YYYY-MM-DD)")
	flag.StringVar(&toStr, "to", "", "end day (YYYY-MM-DD)")
	flag.StringVar(&o.interval, "interval", string(fmp.Interval1Hour), "intraday interval or indicator timeframe")
	flag.StringVar(&o.indicator, "indicator", string(fmp.SMA), "technical indicator")
	flag.IntVar(&o.periodLength, "period-length", 10, "indicator period length")
	flag.StringVar(&o.period, "period", "", "fiscal period (Q1..Q4, FY, annual, quarter)")
	flag.IntVar(&o.limit, "limit", 0, "record limit")
	flag.IntVar(&o.page, "page", 0, "page for latest-statements")
	flag.StringVar(&o.path, "path", "", "endpoint path for raw")
	flag.BoolVar(&o.sides, "sides", true, "keep bid/ask/last apart for latest-quotes")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.IntVar(&timeout, "timeout", 60, "overall timeout seconds")
	list := flag.Bool("list", false, "list endpoints and exit")
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(endpointNames(), "\n"))
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	if err := run(cfg, o, symbolsCSV, fromStr, toStr, time.Duration(timeout)*time.Second, logger); err != nil {
		logger.Error("fetch failed", "endpoint", o.endpoint, "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, o options, symbolsCSV, fromStr, toStr string, timeout time.Duration, logger *slog.Logger) error {
	var err error
	o.symbols = config.SplitCSV(symbolsCSV)
	if fromStr != "" {
		if o.from, err = fmp.ParseDay(fromStr); err != nil {
			return fmt.Errorf("-from: %w", err)
		}
	}
	if toStr != "" {
		if o.to, err = fmp.ParseDay(toStr); err != nil {
			return fmt.Errorf("-to: %w", err)
		}
	}

	client, err := fmp.New(cfg.FMP.APIKey,
		fmp.WithBaseURL(cfg.FMP.BaseURL),
		fmp.WithVersion(cfg.FMP.Version),
		fmp.WithValidation(cfg.FMP.Validate),
		fmp.WithDebug(cfg.FMP.Debug),
		fmp.WithTimeout(cfg.FMP.Timeout()),
		fmp.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var result any
	switch {
	case o.endpoint == "latest-quotes":
		result, err = latestQuotes(ctx, cfg, client, o, logger)
	case symbolCalls[o.endpoint] != nil:
		result, err = perSymbol(ctx, client, symbolCalls[o.endpoint], o, logger)
	case calls[o.endpoint] != nil:
		result, err = calls[o.endpoint](ctx, client, o)
	default:
		return fmt.Errorf("unknown endpoint %q", o.endpoint)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// perSymbol fans out one request per symbol. The first failure cancels the
// rest.
func perSymbol(ctx context.Context, client *fmp.Client, fn symbolCall, o options, logger *slog.Logger) (map[string]any, error) {
	if len(o.symbols) == 0 {
		return nil, fmt.Errorf("endpoint %q needs -symbols", o.endpoint)
	}

	results := make([]any, len(o.symbols))
	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range o.symbols {
		g.Go(func() error {
			start := time.Now()
			v, err := fn(gctx, client, symbol, o)
			if err != nil {
				return fmt.Errorf("%s: %w", symbol, err)
			}
			logger.Debug("fetched", "endpoint", o.endpoint, "symbol", symbol, "elapsed", time.Since(start))
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(o.symbols))
	for i, symbol := range o.symbols {
		out[symbol] = results[i]
	}
	return out, nil
}

// latestQuotes normalizes batch quotes through the provider adapter and keeps
// the newest price per exchange and side.
func latestQuotes(ctx context.Context, cfg config.Config, client *fmp.Client, o options, logger *slog.Logger) ([]aggregate.Latest, error) {
	var p provider.Provider = fmpadapter.New(fmpadapter.Config{
		Currency:    cfg.FMP.Currency,
		Aftermarket: cfg.FMP.Aftermarket,
	}, client)

	quotes, err := p.Fetch(ctx, o.symbols)
	if err != nil {
		return nil, err
	}
	logger.Info("quotes", "provider", p.Name(), "count", len(quotes))
	return aggregate.LatestByMarket(quotes, o.sides), nil
}

func endpointNames() []string {
	names := []string{"latest-quotes"}
	for name := range symbolCalls {
		names = append(names, name)
	}
	for name := range calls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package aggregate

import (
	"sort"
	"strings"
	"time"

	"fmpocket/internal/provider"
)

// MarketKey identifies a normalized quote bucket.
type MarketKey struct {
	Symbol   string
	Exchange string
	Side     string
	Currency string
}

// Latest is the latest quote per MarketKey.
type Latest struct {
	Symbol     string    `json:"symbol"`
	Exchange   string    `json:"exchange"`
	Side       string    `json:"side"`
	Currency   string    `json:"currency"`
	Price      string    `json:"price"`
	Provider   string    `json:"provider"`
	ReceivedAt time.Time `json:"received_at"`
}

// aliasMap folds exchange spellings onto one name.
var aliasMap = map[string]string{
	"nasdaq":                  "NASDAQ",
	"nasdaq global select":    "NASDAQ",
	"nasdaq global market":    "NASDAQ",
	"nasdaq capital market":   "NASDAQ",
	"nyse":                    "NYSE",
	"new york stock exchange": "NYSE",
	"amex":                    "AMEX",
	"nyse american":           "AMEX",
	"crypto":                  "CRYPTO",
	"ccc":                     "CRYPTO",
	"forex":                   "FOREX",
	"commodity":               "COMMODITY",
}

// NormalizeSource splits a Provider:exchange:side source. Exchanges are
// folded through aliasMap and sides are lower-cased.
func NormalizeSource(src string) (exchange string, side string) {
	s := strings.TrimSpace(src)
	if s == "" {
		return "", ""
	}
	parts := strings.Split(s, ":")

	var eraw, sraw string
	if len(parts) >= 2 {
		eraw = parts[1]
	}
	if len(parts) >= 3 {
		sraw = parts[2]
	}

	e := strings.TrimSpace(eraw)
	if norm, ok := aliasMap[strings.ToLower(e)]; ok {
		exchange = norm
	} else {
		exchange = strings.ToUpper(e)
	}
	side = strings.ToLower(strings.TrimSpace(sraw))
	return exchange, side
}

// LatestByMarket collapses quotes by (Symbol, Exchange, Side?, Currency)
// keeping the newest. If includeSides is false, side is forced to "" for
// grouping. For equal timestamps, later input wins. Zero timestamps are
// replaced with time.Now().UTC().
func LatestByMarket(quotes []provider.Quote, includeSides bool) []Latest {
	now := time.Now().UTC()
	latest := make(map[MarketKey]Latest, len(quotes))

	for _, q := range quotes {
		exchange, side := NormalizeSource(q.Source)
		if !includeSides {
			side = ""
		}
		ts := q.ReceivedAt
		if ts.IsZero() {
			ts = now
		}

		providerName := q.Source
		if idx := strings.Index(q.Source, ":"); idx > 0 {
			providerName = q.Source[:idx]
		}

		key := MarketKey{Symbol: q.Symbol, Exchange: exchange, Side: side, Currency: q.Currency}
		if cur, ok := latest[key]; ok && ts.Before(cur.ReceivedAt) {
			continue
		}
		latest[key] = Latest{
			Symbol:     q.Symbol,
			Exchange:   exchange,
			Side:       side,
			Currency:   q.Currency,
			Price:      q.Price,
			Provider:   providerName,
			ReceivedAt: ts,
		}
	}

	out := make([]Latest, 0, len(latest))
	for _, v := range latest {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		if out[i].Exchange != out[j].Exchange {
			return out[i].Exchange < out[j].Exchange
		}
		if out[i].Side != out[j].Side {
			return out[i].Side < out[j].Side
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}

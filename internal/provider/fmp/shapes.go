package fmp

import "strings"

func str(name string) Field     { return Field{Name: name, Kind: KindString} }
func num(name string) Field     { return Field{Name: name, Kind: KindNumber} }
func date(name string) Field    { return Field{Name: name, Kind: KindDate} }
func boolean(name string) Field { return Field{Name: name, Kind: KindBool} }
func link(name string) Field    { return Field{Name: name, Kind: KindURL} }

func nullable(f Field) Field {
	f.Nullable = true
	return f
}

func nums(names ...string) []Field {
	out := make([]Field, len(names))
	for i, name := range names {
		out[i] = num(name)
	}
	return out
}

func fields(groups ...[]Field) []Field {
	var out []Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Shapes of the endpoint families. Where the vendor has been seen to send
// null for a field, the field is nullable.
var (
	ShortQuoteShape = NewShape("short quote",
		str("symbol"), num("price"), num("change"), num("volume"))

	QuoteShape = NewShape("quote", fields(
		[]Field{str("symbol"), str("name"), str("exchange")},
		nums("price", "changePercentage", "change", "volume", "dayLow", "dayHigh", "yearHigh", "yearLow"),
		[]Field{nullable(num("marketCap"))},
		nums("priceAvg50", "priceAvg200", "open", "previousClose", "timestamp"),
	)...)

	AftermarketQuoteShape = NewShape("aftermarket quote", fields(
		[]Field{str("symbol")},
		nums("bidSize", "bidPrice", "askSize", "askPrice", "volume", "timestamp"),
	)...)

	PriceChangeShape = NewShape("price change", fields(
		[]Field{str("symbol")},
		nums("1D", "5D", "1M", "3M", "6M", "ytd", "1Y", "3Y", "5Y", "10Y", "max"),
	)...)

	LightChartShape = NewShape("light chart",
		str("symbol"), date("date"), num("price"), num("volume"))

	FullChartShape = NewShape("full chart", fields(
		[]Field{str("symbol"), date("date")},
		nums("open", "high", "low", "close", "volume", "change", "changePercent", "vwap"),
	)...)

	IntradayChartShape = NewShape("intraday chart", fields(
		[]Field{date("date")},
		nums("open", "low", "high", "close", "volume"),
	)...)

	SearchShape = NewShape("search",
		str("symbol"), str("name"), str("currency"), nullable(str("exchangeFullName")), str("exchange"))

	CompanyProfileShape = NewShape("company profile", fields(
		[]Field{str("symbol"), num("price"), nullable(num("marketCap"))},
		nums("beta", "lastDividend"),
		[]Field{str("range")},
		nums("change", "changePercentage", "volume", "averageVolume"),
		[]Field{
			str("companyName"), str("currency"),
			nullable(str("cik")), nullable(str("isin")), nullable(str("cusip")),
			nullable(str("exchangeFullName")), str("exchange"), str("industry"),
			nullable(link("website")), str("description"), nullable(str("ceo")), str("sector"),
			nullable(str("country")), nullable(str("fullTimeEmployees")), nullable(str("phone")),
			nullable(str("address")), nullable(str("city")), nullable(str("state")), nullable(str("zip")),
			link("image"), date("ipoDate"),
			boolean("defaultImage"), boolean("isEtf"), boolean("isActivelyTrading"), boolean("isAdr"), boolean("isFund"),
		},
	)...)

	EmployeeCountShape = NewShape("employee count",
		str("symbol"), str("cik"), date("acceptanceTime"), date("periodOfReport"), str("companyName"),
		str("formType"), date("filingDate"), num("employeeCount"), link("source"))

	MarketCapShape = NewShape("market cap",
		str("symbol"), date("date"), num("marketCap"))

	StockListShape = NewShape("stock list",
		str("symbol"), str("name"), str("exchange"), str("currency"))

	CryptoListShape = NewShape("crypto list",
		str("symbol"), str("name"), str("exchange"), date("icoDate"),
		nullable(num("circulatingSupply")), nullable(num("totalSupply")))

	ForexListShape = NewShape("forex list",
		str("symbol"), str("fromCurrency"), str("fromName"), str("toCurrency"), str("toName"))

	CommodityListShape = NewShape("commodity list",
		str("symbol"), str("name"), nullable(str("exchange")), str("tradeMonth"), str("currency"))

	MarketHoursShape = NewShape("market hours",
		str("exchange"), str("name"), str("openingHour"), str("closingHour"), str("timezone"), boolean("isMarketOpen"))

	HolidaysShape = NewShape("holidays",
		str("exchange"), date("date"), str("name"),
		nullable(boolean("isClosed")), nullable(str("adjOpenTime")), nullable(str("adjCloseTime")))

	KeyMetricsShape = NewShape("key metrics", fields(
		[]Field{str("symbol"), date("date"), str("fiscalYear"), str("period"), str("reportedCurrency")},
		nums(keyMetricNames...),
	)...)

	RatiosShape = NewShape("ratios", fields(
		[]Field{str("symbol"), date("date"), str("fiscalYear"), str("period"), str("reportedCurrency")},
		nums(ratioNames...),
	)...)

	StatementShape = NewShape("financial statement",
		str("symbol"), nullable(num("calendarYear")), str("period"), date("date"), nullable(date("dateAdded")))

	indicatorBase = NewShape("indicator", fields(
		[]Field{date("date")},
		nums("open", "high", "low", "close", "volume"),
	)...)
)

// Indicator names a technical indicator. The value is also the name of the
// record member carrying the indicator value.
type Indicator string

const (
	SMA               Indicator = "sma"
	EMA               Indicator = "ema"
	WMA               Indicator = "wma"
	DEMA              Indicator = "dema"
	TEMA              Indicator = "tema"
	RSI               Indicator = "rsi"
	StandardDeviation Indicator = "standardDeviation"
	Williams          Indicator = "williams"
	ADX               Indicator = "adx"
)

// Indicators lists every supported technical indicator.
var Indicators = []Indicator{SMA, EMA, WMA, DEMA, TEMA, RSI, StandardDeviation, Williams, ADX}

// Path is the endpoint path of the indicator.
func (i Indicator) Path() string {
	return "/technical-indicators/" + strings.ToLower(string(i))
}

var indicatorShapes = func() map[Indicator]*Shape {
	m := make(map[Indicator]*Shape, len(Indicators))
	for _, ind := range Indicators {
		m[ind] = indicatorBase.Extend(string(ind)+" indicator", num(string(ind)))
	}
	return m
}()

// IndicatorShape returns the shape of an indicator's records, or nil for an
// unknown indicator.
func IndicatorShape(i Indicator) *Shape {
	return indicatorShapes[i]
}

var keyMetricNames = []string{
	"marketCap", "enterpriseValue", "evToSales", "evToOperatingCashFlow", "evToFreeCashFlow",
	"evToEBITDA", "netDebtToEBITDA", "currentRatio", "incomeQuality", "grahamNumber", "grahamNetNet",
	"taxBurden", "interestBurden", "workingCapital", "investedCapital", "returnOnAssets",
	"operatingReturnOnAssets", "returnOnTangibleAssets", "returnOnEquity", "returnOnInvestedCapital",
	"returnOnCapitalEmployed", "earningsYield", "freeCashFlowYield", "capexToOperatingCashFlow",
	"capexToDepreciation", "capexToRevenue", "salesGeneralAndAdministrativeToRevenue",
	"researchAndDevelopementToRevenue", "stockBasedCompensationToRevenue", "intangiblesToTotalAssets",
	"averageReceivables", "averagePayables", "averageInventory", "daysOfSalesOutstanding",
	"daysOfPayablesOutstanding", "daysOfInventoryOutstanding", "operatingCycle", "cashConversionCycle",
	"freeCashFlowToEquity", "freeCashFlowToFirm", "tangibleAssetValue", "netCurrentAssetValue",
}

var ratioNames = []string{
	"grossProfitMargin", "ebitMargin", "ebitdaMargin", "operatingProfitMargin", "pretaxProfitMargin",
	"continuousOperationsProfitMargin", "netProfitMargin", "bottomLineProfitMargin", "receivablesTurnover",
	"payablesTurnover", "inventoryTurnover", "fixedAssetTurnover", "assetTurnover", "currentRatio",
	"quickRatio", "solvencyRatio", "cashRatio", "priceToEarningsRatio", "priceToEarningsGrowthRatio",
	"forwardPriceToEarningsGrowthRatio", "priceToBookRatio", "priceToSalesRatio", "priceToFreeCashFlowRatio",
	"priceToOperatingCashFlowRatio", "debtToAssetsRatio", "debtToEquityRatio", "debtToCapitalRatio",
	"longTermDebtToCapitalRatio", "financialLeverageRatio", "workingCapitalTurnoverRatio",
	"operatingCashFlowRatio", "operatingCashFlowSalesRatio", "freeCashFlowOperatingCashFlowRatio",
	"debtServiceCoverageRatio", "interestCoverageRatio", "shortTermOperatingCashFlowCoverageRatio",
	"operatingCashFlowCoverageRatio", "capitalExpenditureCoverageRatio", "dividendPaidAndCapexCoverageRatio",
	"dividendPayoutRatio", "dividendYield", "dividendYieldPercentage", "revenuePerShare", "netIncomePerShare",
	"interestDebtPerShare", "cashPerShare", "bookValuePerShare", "tangibleBookValuePerShare",
	"shareholdersEquityPerShare", "operatingCashFlowPerShare", "capexPerShare", "freeCashFlowPerShare",
	"netIncomePerEBT", "ebtPerEbit", "priceToFairValue", "debtToMarketCap", "effectiveTaxRate",
	"enterpriseValueMultiple",
}

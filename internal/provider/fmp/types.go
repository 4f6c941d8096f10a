package fmp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a point in time decoded from any of the vendor's date layouts.
type Date struct {
	time.Time
}

// UnmarshalJSON accepts null, RFC 3339 timestamps, "2006-01-02 15:04:05"
// and day strings.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}
	if s == "" {
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date as RFC 3339, or null for the zero value.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time)
}

// Period selects a fiscal period.
type Period string

const (
	PeriodQ1      Period = "Q1"
	PeriodQ2      Period = "Q2"
	PeriodQ3      Period = "Q3"
	PeriodQ4      Period = "Q4"
	PeriodFY      Period = "FY"
	PeriodAnnual  Period = "annual"
	PeriodQuarter Period = "quarter"
)

// Interval is an intraday bar width.
type Interval string

const (
	Interval1Min  Interval = "1min"
	Interval5Min  Interval = "5min"
	Interval15Min Interval = "15min"
	Interval30Min Interval = "30min"
	Interval1Hour Interval = "1hour"
	Interval4Hour Interval = "4hour"
	// Interval1Day is accepted as an indicator timeframe only.
	Interval1Day Interval = "1day"
)

var intradayIntervals = map[Interval]bool{
	Interval1Min: true, Interval5Min: true, Interval15Min: true,
	Interval30Min: true, Interval1Hour: true, Interval4Hour: true,
}

// ShortQuote is a live price snapshot.
type ShortQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
	Volume float64 `json:"volume"`
}

// Quote is a full real-time quote.
type Quote struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	Exchange         string   `json:"exchange"`
	Price            float64  `json:"price"`
	ChangePercentage float64  `json:"changePercentage"`
	Change           float64  `json:"change"`
	Volume           float64  `json:"volume"`
	DayLow           float64  `json:"dayLow"`
	DayHigh          float64  `json:"dayHigh"`
	YearHigh         float64  `json:"yearHigh"`
	YearLow          float64  `json:"yearLow"`
	MarketCap        *float64 `json:"marketCap"`
	PriceAvg50       float64  `json:"priceAvg50"`
	PriceAvg200      float64  `json:"priceAvg200"`
	Open             float64  `json:"open"`
	PreviousClose    float64  `json:"previousClose"`
	Timestamp        float64  `json:"timestamp"` // Unix seconds
}

// AftermarketQuote is a bid/ask snapshot outside regular hours.
type AftermarketQuote struct {
	Symbol    string  `json:"symbol"`
	BidSize   float64 `json:"bidSize"`
	BidPrice  float64 `json:"bidPrice"`
	AskSize   float64 `json:"askSize"`
	AskPrice  float64 `json:"askPrice"`
	Volume    float64 `json:"volume"`
	Timestamp float64 `json:"timestamp"`
}

// PriceChange holds percentage price changes over standard horizons.
type PriceChange struct {
	Symbol     string  `json:"symbol"`
	OneDay     float64 `json:"1D"`
	FiveDay    float64 `json:"5D"`
	OneMonth   float64 `json:"1M"`
	ThreeMonth float64 `json:"3M"`
	SixMonth   float64 `json:"6M"`
	YTD        float64 `json:"ytd"`
	OneYear    float64 `json:"1Y"`
	ThreeYear  float64 `json:"3Y"`
	FiveYear   float64 `json:"5Y"`
	TenYear    float64 `json:"10Y"`
	Max        float64 `json:"max"`
}

type LightChartPoint struct {
	Symbol string  `json:"symbol"`
	Date   Date    `json:"date"`
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

type FullChartPoint struct {
	Symbol        string  `json:"symbol"`
	Date          Date    `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        float64 `json:"volume"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	VWAP          float64 `json:"vwap"`
}

type IntradayBar struct {
	Date   Date    `json:"date"`
	Open   float64 `json:"open"`
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type SearchResult struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Currency         string  `json:"currency"`
	ExchangeFullName *string `json:"exchangeFullName"`
	Exchange         string  `json:"exchange"`
}

type CompanyProfile struct {
	Symbol            string   `json:"symbol"`
	Price             float64  `json:"price"`
	MarketCap         *float64 `json:"marketCap"`
	Beta              float64  `json:"beta"`
	LastDividend      float64  `json:"lastDividend"`
	Range             string   `json:"range"`
	Change            float64  `json:"change"`
	ChangePercentage  float64  `json:"changePercentage"`
	Volume            float64  `json:"volume"`
	AverageVolume     float64  `json:"averageVolume"`
	CompanyName       string   `json:"companyName"`
	Currency          string   `json:"currency"`
	CIK               *string  `json:"cik"`
	ISIN              *string  `json:"isin"`
	CUSIP             *string  `json:"cusip"`
	ExchangeFullName  *string  `json:"exchangeFullName"`
	Exchange          string   `json:"exchange"`
	Industry          string   `json:"industry"`
	Website           *string  `json:"website"`
	Description       string   `json:"description"`
	CEO               *string  `json:"ceo"`
	Sector            string   `json:"sector"`
	Country           *string  `json:"country"`
	FullTimeEmployees *string  `json:"fullTimeEmployees"`
	Phone             *string  `json:"phone"`
	Address           *string  `json:"address"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	Zip               *string  `json:"zip"`
	Image             string   `json:"image"`
	IPODate           Date     `json:"ipoDate"`
	DefaultImage      bool     `json:"defaultImage"`
	IsETF             bool     `json:"isEtf"`
	IsActivelyTrading bool     `json:"isActivelyTrading"`
	IsADR             bool     `json:"isAdr"`
	IsFund            bool     `json:"isFund"`
}

type EmployeeCount struct {
	Symbol         string  `json:"symbol"`
	CIK            string  `json:"cik"`
	AcceptanceTime Date    `json:"acceptanceTime"`
	PeriodOfReport Date    `json:"periodOfReport"`
	CompanyName    string  `json:"companyName"`
	FormType       string  `json:"formType"`
	FilingDate     Date    `json:"filingDate"`
	EmployeeCount  float64 `json:"employeeCount"`
	Source         string  `json:"source"`
}

type MarketCap struct {
	Symbol    string  `json:"symbol"`
	Date      Date    `json:"date"`
	MarketCap float64 `json:"marketCap"`
}

type StockListing struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
}

type CryptoListing struct {
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	Exchange          string   `json:"exchange"`
	ICODate           Date     `json:"icoDate"`
	CirculatingSupply *float64 `json:"circulatingSupply"`
	TotalSupply       *float64 `json:"totalSupply"`
}

type ForexPair struct {
	Symbol       string `json:"symbol"`
	FromCurrency string `json:"fromCurrency"`
	FromName     string `json:"fromName"`
	ToCurrency   string `json:"toCurrency"`
	ToName       string `json:"toName"`
}

type Commodity struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Exchange   *string `json:"exchange"`
	TradeMonth string  `json:"tradeMonth"`
	Currency   string  `json:"currency"`
}

type MarketHours struct {
	Exchange     string `json:"exchange"`
	Name         string `json:"name"`
	OpeningHour  string `json:"openingHour"`
	ClosingHour  string `json:"closingHour"`
	Timezone     string `json:"timezone"`
	IsMarketOpen bool   `json:"isMarketOpen"`
}

type Holiday struct {
	Exchange     string  `json:"exchange"`
	Date         Date    `json:"date"`
	Name         string  `json:"name"`
	IsClosed     *bool   `json:"isClosed"`
	AdjOpenTime  *string `json:"adjOpenTime"`
	AdjCloseTime *string `json:"adjCloseTime"`
}

// Metrics is a key-metrics or ratios record. Values holds every numeric
// member keyed by its vendor name.
type Metrics struct {
	Symbol           string
	Date             Date
	FiscalYear       string
	Period           string
	ReportedCurrency string
	Values           map[string]float64
}

func (m *Metrics) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var head struct {
		Symbol           string `json:"symbol"`
		Date             Date   `json:"date"`
		FiscalYear       string `json:"fiscalYear"`
		Period           string `json:"period"`
		ReportedCurrency string `json:"reportedCurrency"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	m.Symbol, m.Date, m.FiscalYear, m.Period, m.ReportedCurrency =
		head.Symbol, head.Date, head.FiscalYear, head.Period, head.ReportedCurrency
	m.Values = make(map[string]float64, len(raw))
	for k, v := range raw {
		if bytes.Equal(v, []byte("null")) {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			m.Values[k] = f
		}
	}
	return nil
}

// IndicatorPoint is one bar of a technical indicator series.
type IndicatorPoint struct {
	Date   Date    `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
	Value  float64 `json:"value"` // member named after the indicator
}

// StatementEntry is a financial statement line. Members beyond the common
// header are kept in Raw.
type StatementEntry struct {
	Symbol       string         `json:"symbol"`
	CalendarYear *float64       `json:"calendarYear"`
	Period       string         `json:"period"`
	Date         Date           `json:"date"`
	DateAdded    Date           `json:"dateAdded"`
	Raw          map[string]any `json:"-"`
}

func (s *StatementEntry) UnmarshalJSON(b []byte) error {
	type entry StatementEntry
	var e entry
	if err := json.Unmarshal(b, &e); err != nil {
		return err
	}
	if err := json.Unmarshal(b, &e.Raw); err != nil {
		return err
	}
	*s = StatementEntry(e)
	return nil
}

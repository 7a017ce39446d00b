// Package entity defines the domain models for the marketdata feature.
package entity

// Resolution is a Finnhub candle bucket size.
type Resolution string

const (
	ResolutionDaily  Resolution = "D"  // One candle per trading day
	ResolutionHourly Resolution = "60" // One candle per 60 minutes
)

// CandleWindow describes a [now - Days, now] candle query.
type CandleWindow struct {
	Name       string     // Route segment (e.g. "one-month")
	Resolution Resolution // Candle resolution sent upstream
	Days       int        // Look-back in days
}

// Candle windows served by the proxy.
var (
	WindowWeek        = CandleWindow{Name: "week", Resolution: ResolutionHourly, Days: 7}
	WindowOneMonth    = CandleWindow{Name: "one-month", Resolution: ResolutionDaily, Days: 30}
	WindowThreeMonths = CandleWindow{Name: "three-months", Resolution: ResolutionDaily, Days: 90}
	WindowOneYear     = CandleWindow{Name: "one-year", Resolution: ResolutionDaily, Days: 365}
)

// CompanyNewsDays is the look-back for company news.
const CompanyNewsDays = 7

// MarketNewsCategory is the Finnhub news category relayed by /market-news.
const MarketNewsCategory = "general"

// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"stock_proxy/internal/config"
	"stock_proxy/internal/feature/marketdata/transport/handler"
	"stock_proxy/internal/feature/marketdata/usecase"
	"stock_proxy/internal/platform/externalapi/alphavantage"
	"stock_proxy/internal/platform/externalapi/finnhub"
	infrahttp "stock_proxy/internal/platform/http"
)

// NewFinnhubClient creates a Finnhub client with its own timeout-bound HTTP client.
func NewFinnhubClient(cfg *config.Config) *finnhub.Client {
	fc := cfg.FinnhubClientConfig()
	return finnhub.NewClient(fc, infrahttp.NewRestyClient(infrahttp.NewHTTPClient(fc.Timeout)))
}

// NewAlphaVantageClient creates an Alpha Vantage client with its own timeout-bound HTTP client.
func NewAlphaVantageClient(cfg *config.Config) *alphavantage.Client {
	ac := cfg.AlphaVantageClientConfig()
	return alphavantage.NewClient(ac, infrahttp.NewRestyClient(infrahttp.NewHTTPClient(ac.Timeout)))
}

// NewMarketDataHandler wires both provider clients into the usecase and its HTTP handler.
// now is the clock used for date windows; nil means time.Now.
func NewMarketDataHandler(cfg *config.Config, now func() time.Time) *handler.MarketDataHandler {
	uc := usecase.NewMarketDataUsecase(NewFinnhubClient(cfg), NewAlphaVantageClient(cfg), now)
	return handler.NewMarketDataHandler(uc)
}

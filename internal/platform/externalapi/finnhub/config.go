// Package finnhub provides a client for the Finnhub stock market API.
package finnhub

import "time"

const (
	// DefaultBaseURL はクォート・ニュース・ローソク足APIのベースURLです。
	DefaultBaseURL = "https://finnhub.io/api/v1"
	// DefaultTickBaseURL はティックAPIのベースURLです（別ホスト）。
	DefaultTickBaseURL = "https://tick.finnhub.io/api/v1"
)

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey      string        // Token sent as the "token" query parameter
	BaseURL     string        // e.g. "https://finnhub.io/api/v1"
	TickBaseURL string        // e.g. "https://tick.finnhub.io/api/v1"
	Timeout     time.Duration // HTTP request timeout
}

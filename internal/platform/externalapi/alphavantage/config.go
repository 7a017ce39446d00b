// Package alphavantage provides a client for the Alpha Vantage fundamentals API.
package alphavantage

import "time"

// DefaultBaseURL はAlpha Vantage APIのベースURLです。
const DefaultBaseURL = "https://www.alphavantage.co"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // Key sent as the "apikey" query parameter
	BaseURL string        // e.g. "https://www.alphavantage.co"
	Timeout time.Duration // HTTP request timeout
}

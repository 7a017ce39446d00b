package alphavantage

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"stock_proxy/internal/feature/marketdata/usecase"
	"stock_proxy/internal/platform/externalapi/upstream"
)

const (
	providerName     = "alphavantage"
	functionOverview = "OVERVIEW"
)

// Client はAlpha Vantage APIから企業概要を取得するOverviewProvider実装です。
type Client struct {
	cfg    Config
	client *resty.Client
}

var _ usecase.OverviewProvider = (*Client)(nil)

// NewClient はClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *resty.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{cfg: cfg, client: client}
}

// Overview は function=OVERVIEW で企業概要を取得します。
// Alpha Vantage はエラーやレート超過も200で返すため、ボディはそのまま呼び出し元に渡ります。
func (c *Client) Overview(ctx context.Context, symbol string) (json.RawMessage, error) {
	return upstream.Fetch(ctx, c.client, upstream.Request{
		Provider: providerName,
		URL:      c.cfg.BaseURL + "/query",
		Query: map[string]string{
			"function": functionOverview,
			"symbol":   symbol,
			"apikey":   c.cfg.APIKey,
		},
	})
}

package finnhub

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-resty/resty/v2"

	"stock_proxy/internal/feature/marketdata/usecase"
	"stock_proxy/internal/platform/externalapi/upstream"
)

const (
	providerName = "finnhub"

	// tickLimit / tickSkip はティックAPIに渡す固定のページング値です。
	tickLimit = 500
	tickSkip  = 0
)

// Client はFinnhub APIから株価・ニュースデータを取得するFinnhubProvider実装です。
// 応答ボディは解釈せず、検証済みのJSONとしてそのまま返します。
type Client struct {
	cfg    Config
	client *resty.Client
}

// ClientがFinnhubProviderを実装していることをコンパイル時に検証します。
var _ usecase.FinnhubProvider = (*Client)(nil)

// NewClient は指定された設定とrestyクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *resty.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TickBaseURL == "" {
		cfg.TickBaseURL = DefaultTickBaseURL
	}
	return &Client{cfg: cfg, client: client}
}

// Quote は /quote から現在値を取得します。
func (c *Client) Quote(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.get(ctx, c.cfg.BaseURL+"/quote", map[string]string{
		"symbol": symbol,
	})
}

// News は /news から指定カテゴリのマーケットニュースを取得します。
func (c *Client) News(ctx context.Context, category string) (json.RawMessage, error) {
	return c.get(ctx, c.cfg.BaseURL+"/news", map[string]string{
		"category": category,
	})
}

// CompanyNews は /company-news から from〜to（YYYY-MM-DD）の企業ニュースを取得します。
func (c *Client) CompanyNews(ctx context.Context, symbol, from, to string) (json.RawMessage, error) {
	return c.get(ctx, c.cfg.BaseURL+"/company-news", map[string]string{
		"symbol": symbol,
		"from":   from,
		"to":     to,
	})
}

// StockTick はティックAPIから指定日（YYYY-MM-DD）の約定データを取得します。
func (c *Client) StockTick(ctx context.Context, symbol, date string) (json.RawMessage, error) {
	return c.get(ctx, c.cfg.TickBaseURL+"/stock/tick", map[string]string{
		"symbol": symbol,
		"date":   date,
		"limit":  strconv.Itoa(tickLimit),
		"skip":   strconv.Itoa(tickSkip),
		"format": "json",
	})
}

// Candles は /stock/candle から from〜to（Unix秒）のローソク足を取得します。
func (c *Client) Candles(ctx context.Context, symbol, resolution string, from, to int64) (json.RawMessage, error) {
	return c.get(ctx, c.cfg.BaseURL+"/stock/candle", map[string]string{
		"symbol":     symbol,
		"resolution": resolution,
		"from":       strconv.FormatInt(from, 10),
		"to":         strconv.FormatInt(to, 10),
	})
}

// get は認証トークンを付与して upstream.Fetch を呼び出します。
func (c *Client) get(ctx context.Context, url string, q map[string]string) (json.RawMessage, error) {
	q["token"] = c.cfg.APIKey
	return upstream.Fetch(ctx, c.client, upstream.Request{
		Provider: providerName,
		URL:      url,
		Query:    q,
	})
}

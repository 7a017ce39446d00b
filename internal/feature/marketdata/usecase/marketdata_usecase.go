// Package usecase はマーケットデータ中継のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"stock_proxy/internal/feature/marketdata/domain/entity"
	"stock_proxy/internal/shared/apperror"
	"stock_proxy/internal/shared/daterange"
)

// FinnhubProvider はクォート・ニュース・ティック・ローソク足を提供する外部APIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FinnhubProvider interface {
	Quote(ctx context.Context, symbol string) (json.RawMessage, error)
	News(ctx context.Context, category string) (json.RawMessage, error)
	CompanyNews(ctx context.Context, symbol, from, to string) (json.RawMessage, error)
	StockTick(ctx context.Context, symbol, date string) (json.RawMessage, error)
	Candles(ctx context.Context, symbol, resolution string, from, to int64) (json.RawMessage, error)
}

// OverviewProvider は企業概要を提供する外部APIを抽象化します。
type OverviewProvider interface {
	Overview(ctx context.Context, symbol string) (json.RawMessage, error)
}

// marketDataUsecase は各ルートに対応する外部API呼び出しを1回だけ行います。
type marketDataUsecase struct {
	finnhub  FinnhubProvider
	overview OverviewProvider
	now      func() time.Time
}

// NewMarketDataUsecase はmarketDataUsecaseの新しいインスタンスを生成します。
// now が nil の場合は time.Now を使用します。
func NewMarketDataUsecase(fh FinnhubProvider, ov OverviewProvider, now func() time.Time) *marketDataUsecase {
	if now == nil {
		now = time.Now
	}
	return &marketDataUsecase{finnhub: fh, overview: ov, now: now}
}

// GetQuote は銘柄の現在値を取得します。
func (u *marketDataUsecase) GetQuote(ctx context.Context, symbol string) (json.RawMessage, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	return u.finnhub.Quote(ctx, symbol)
}

// GetMarketNews は一般カテゴリのマーケットニュースを取得します。
func (u *marketDataUsecase) GetMarketNews(ctx context.Context) (json.RawMessage, error) {
	return u.finnhub.News(ctx, entity.MarketNewsCategory)
}

// GetCompanyNews は直近7日間の企業ニュースを取得します。
func (u *marketDataUsecase) GetCompanyNews(ctx context.Context, symbol string) (json.RawMessage, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	from, to := daterange.Dates(u.now(), entity.CompanyNewsDays)
	return u.finnhub.CompanyNews(ctx, symbol, from, to)
}

// GetTodayTicks は当日のティックデータを取得します。
func (u *marketDataUsecase) GetTodayTicks(ctx context.Context, symbol string) (json.RawMessage, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	return u.finnhub.StockTick(ctx, symbol, daterange.Today(u.now()))
}

// GetCandles は指定ウィンドウのローソク足を取得します。
func (u *marketDataUsecase) GetCandles(ctx context.Context, symbol string, w entity.CandleWindow) (json.RawMessage, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	from, to := daterange.Unix(u.now(), w.Days)
	return u.finnhub.Candles(ctx, symbol, string(w.Resolution), from, to)
}

// GetCompanyOverview は企業概要を取得します。
func (u *marketDataUsecase) GetCompanyOverview(ctx context.Context, symbol string) (json.RawMessage, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	return u.overview.Overview(ctx, symbol)
}

// ValidateSymbol は空、または空白・制御文字を含むシンボルを拒否します。
// 形式（取引所サフィックスなど）は外部APIに任せ、ここでは検証しません。
func ValidateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return apperror.New(apperror.InvalidInput, "symbol is required")
	}
	if strings.IndexFunc(symbol, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return apperror.New(apperror.InvalidInput, "symbol must not contain whitespace or control characters")
	}
	return nil
}

package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_proxy/internal/feature/marketdata/domain/entity"
	"stock_proxy/internal/feature/marketdata/usecase"
	"stock_proxy/internal/shared/apperror"
)

// ErrUpstream はモックと期待値の間で共有されるセンチネルエラーです。
var ErrUpstream = errors.New("upstream error")

// fixedNow はテスト用の固定時刻です。
var fixedNow = time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC)

func clock() time.Time { return fixedNow }

// mockFinnhub はFinnhubProviderインターフェースのモック実装です。
type mockFinnhub struct {
	QuoteFunc       func(ctx context.Context, symbol string) (json.RawMessage, error)
	NewsFunc        func(ctx context.Context, category string) (json.RawMessage, error)
	CompanyNewsFunc func(ctx context.Context, symbol, from, to string) (json.RawMessage, error)
	StockTickFunc   func(ctx context.Context, symbol, date string) (json.RawMessage, error)
	CandlesFunc     func(ctx context.Context, symbol, resolution string, from, to int64) (json.RawMessage, error)
	Calls           int
}

func (m *mockFinnhub) Quote(ctx context.Context, symbol string) (json.RawMessage, error) {
	m.Calls++
	return m.QuoteFunc(ctx, symbol)
}

func (m *mockFinnhub) News(ctx context.Context, category string) (json.RawMessage, error) {
	m.Calls++
	return m.NewsFunc(ctx, category)
}

func (m *mockFinnhub) CompanyNews(ctx context.Context, symbol, from, to string) (json.RawMessage, error) {
	m.Calls++
	return m.CompanyNewsFunc(ctx, symbol, from, to)
}

func (m *mockFinnhub) StockTick(ctx context.Context, symbol, date string) (json.RawMessage, error) {
	m.Calls++
	return m.StockTickFunc(ctx, symbol, date)
}

func (m *mockFinnhub) Candles(ctx context.Context, symbol, resolution string, from, to int64) (json.RawMessage, error) {
	m.Calls++
	return m.CandlesFunc(ctx, symbol, resolution, from, to)
}

// mockOverview はOverviewProviderインターフェースのモック実装です。
type mockOverview struct {
	OverviewFunc func(ctx context.Context, symbol string) (json.RawMessage, error)
	Calls        int
}

func (m *mockOverview) Overview(ctx context.Context, symbol string) (json.RawMessage, error) {
	m.Calls++
	return m.OverviewFunc(ctx, symbol)
}

// TestMarketDataUsecase_GetQuote はシンボルがそのままプロバイダに渡されることを検証します。
func TestMarketDataUsecase_GetQuote(t *testing.T) {
	t.Parallel()

	fh := &mockFinnhub{
		QuoteFunc: func(ctx context.Context, symbol string) (json.RawMessage, error) {
			assert.Equal(t, "BRK.B", symbol)
			return json.RawMessage(`{"c":1}`), nil
		},
	}
	uc := usecase.NewMarketDataUsecase(fh, &mockOverview{}, clock)

	got, err := uc.GetQuote(context.Background(), "BRK.B")
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":1}`, string(got))
	assert.Equal(t, 1, fh.Calls)
}

// TestMarketDataUsecase_GetMarketNews は一般カテゴリで呼び出されることを検証します。
func TestMarketDataUsecase_GetMarketNews(t *testing.T) {
	t.Parallel()

	fh := &mockFinnhub{
		NewsFunc: func(ctx context.Context, category string) (json.RawMessage, error) {
			assert.Equal(t, "general", category)
			return json.RawMessage(`[]`), nil
		},
	}
	uc := usecase.NewMarketDataUsecase(fh, &mockOverview{}, clock)

	got, err := uc.GetMarketNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.Equal(t, 1, fh.Calls)
}

// TestMarketDataUsecase_GetCompanyNews は from が to のちょうど7暦日前になることを検証します。
func TestMarketDataUsecase_GetCompanyNews(t *testing.T) {
	t.Parallel()

	fh := &mockFinnhub{
		CompanyNewsFunc: func(ctx context.Context, symbol, from, to string) (json.RawMessage, error) {
			assert.Equal(t, "AAPL", symbol)
			assert.Equal(t, "2024-03-08", from)
			assert.Equal(t, "2024-03-15", to)
			return json.RawMessage(`[]`), nil
		},
	}
	uc := usecase.NewMarketDataUsecase(fh, &mockOverview{}, clock)

	_, err := uc.GetCompanyNews(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, fh.Calls)
}

// TestMarketDataUsecase_GetTodayTicks は当日の日付が渡されることを検証します。
func TestMarketDataUsecase_GetTodayTicks(t *testing.T) {
	t.Parallel()

	fh := &mockFinnhub{
		StockTickFunc: func(ctx context.Context, symbol, date string) (json.RawMessage, error) {
			assert.Equal(t, "AAPL", symbol)
			assert.Equal(t, "2024-03-15", date)
			return json.RawMessage(`{}`), nil
		},
	}
	uc := usecase.NewMarketDataUsecase(fh, &mockOverview{}, clock)

	_, err := uc.GetTodayTicks(context.Background(), "AAPL")
	require.NoError(t, err)
}

// TestMarketDataUsecase_GetCandles は各ウィンドウの解像度と期間を検証します。
func TestMarketDataUsecase_GetCandles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		window         entity.CandleWindow
		wantResolution string
		wantSpan       int64
	}{
		{"week", entity.WindowWeek, "60", 7 * 86400},
		{"one month", entity.WindowOneMonth, "D", 30 * 86400},
		{"three months", entity.WindowThreeMonths, "D", 90 * 86400},
		{"one year", entity.WindowOneYear, "D", 365 * 86400},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fh := &mockFinnhub{
				CandlesFunc: func(ctx context.Context, symbol, resolution string, from, to int64) (json.RawMessage, error) {
					assert.Equal(t, "AAPL", symbol)
					assert.Equal(t, tt.wantResolution, resolution)
					assert.Equal(t, fixedNow.Unix(), to)
					assert.Equal(t, tt.wantSpan, to-from)
					return json.RawMessage(`{"s":"ok"}`), nil
				},
			}
			uc := usecase.NewMarketDataUsecase(fh, &mockOverview{}, clock)

			_, err := uc.GetCandles(context.Background(), "AAPL", tt.window)
			require.NoError(t, err)
			assert.Equal(t, 1, fh.Calls)
		})
	}
}

// TestMarketDataUsecase_GetCompanyOverview は概要プロバイダが呼ばれることを検証します。
func TestMarketDataUsecase_GetCompanyOverview(t *testing.T) {
	t.Parallel()

	ov := &mockOverview{
		OverviewFunc: func(ctx context.Context, symbol string) (json.RawMessage, error) {
			assert.Equal(t, "IBM", symbol)
			return json.RawMessage(`{"Symbol":"IBM"}`), nil
		},
	}
	fh := &mockFinnhub{}
	uc := usecase.NewMarketDataUsecase(fh, ov, clock)

	got, err := uc.GetCompanyOverview(context.Background(), "IBM")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Symbol":"IBM"}`, string(got))
	assert.Equal(t, 1, ov.Calls)
	assert.Equal(t, 0, fh.Calls)
}

// TestMarketDataUsecase_InvalidSymbol は不正なシンボルで外部APIを呼ばないことを検証します。
func TestMarketDataUsecase_InvalidSymbol(t *testing.T) {
	t.Parallel()

	fh := &mockFinnhub{}
	ov := &mockOverview{}
	uc := usecase.NewMarketDataUsecase(fh, ov, clock)
	ctx := context.Background()

	calls := map[string]func(symbol string) error{
		"quote":        func(s string) error { _, err := uc.GetQuote(ctx, s); return err },
		"company news": func(s string) error { _, err := uc.GetCompanyNews(ctx, s); return err },
		"ticks":        func(s string) error { _, err := uc.GetTodayTicks(ctx, s); return err },
		"candles":      func(s string) error { _, err := uc.GetCandles(ctx, s, entity.WindowWeek); return err },
		"overview":     func(s string) error { _, err := uc.GetCompanyOverview(ctx, s); return err },
	}

	for name, call := range calls {
		for _, symbol := range []string{"", "   ", "AA PL", "AAPL\n"} {
			err := call(symbol)
			require.Error(t, err, "%s(%q)", name, symbol)
			assert.Equal(t, apperror.InvalidInput, apperror.From(err).Code(), "%s(%q)", name, symbol)
		}
	}
	assert.Equal(t, 0, fh.Calls)
	assert.Equal(t, 0, ov.Calls)
}

// TestMarketDataUsecase_ProviderError はプロバイダのエラーがそのまま伝播されることを検証します。
func TestMarketDataUsecase_ProviderError(t *testing.T) {
	t.Parallel()

	fh := &mockFinnhub{
		QuoteFunc: func(ctx context.Context, symbol string) (json.RawMessage, error) {
			return nil, ErrUpstream
		},
	}
	uc := usecase.NewMarketDataUsecase(fh, &mockOverview{}, clock)

	_, err := uc.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrUpstream)
}

// TestNewMarketDataUsecase_DefaultClock は now が nil の場合に現在時刻が使われることを検証します。
func TestNewMarketDataUsecase_DefaultClock(t *testing.T) {
	t.Parallel()

	before := time.Now().Unix()
	fh := &mockFinnhub{
		CandlesFunc: func(ctx context.Context, symbol, resolution string, from, to int64) (json.RawMessage, error) {
			assert.GreaterOrEqual(t, to, before)
			assert.LessOrEqual(t, to, time.Now().Unix())
			return json.RawMessage(`{}`), nil
		},
	}
	uc := usecase.NewMarketDataUsecase(fh, &mockOverview{}, nil)

	_, err := uc.GetCandles(context.Background(), "AAPL", entity.WindowOneMonth)
	require.NoError(t, err)
}

func TestValidateSymbol(t *testing.T) {
	t.Parallel()

	valid := []string{"AAPL", "BRK.B", "7203.T", "^GSPC", "BTC-USD", "a"}
	for _, s := range valid {
		assert.NoError(t, usecase.ValidateSymbol(s), s)
	}

	invalid := []string{"", " ", "\t", "AA PL", "AAPL\x00", " AAPL"}
	for _, s := range invalid {
		assert.Error(t, usecase.ValidateSymbol(s), "%q", s)
	}
}

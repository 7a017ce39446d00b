// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_proxy/internal/api"
	"stock_proxy/internal/feature/marketdata/domain/entity"
	"stock_proxy/internal/shared/apperror"
)

// jsonContentType は中継するレスポンスのContent-Typeです。
const jsonContentType = "application/json; charset=utf-8"

// MarketDataUsecase はマーケットデータ中継のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketDataUsecase interface {
	GetQuote(ctx context.Context, symbol string) (json.RawMessage, error)
	GetMarketNews(ctx context.Context) (json.RawMessage, error)
	GetCompanyNews(ctx context.Context, symbol string) (json.RawMessage, error)
	GetTodayTicks(ctx context.Context, symbol string) (json.RawMessage, error)
	GetCandles(ctx context.Context, symbol string, w entity.CandleWindow) (json.RawMessage, error)
	GetCompanyOverview(ctx context.Context, symbol string) (json.RawMessage, error)
}

// MarketDataHandler は各ルートのHTTPリクエストを処理し、外部APIのJSONをそのまま返します。
type MarketDataHandler struct {
	uc MarketDataUsecase
}

// MarketDataHandlerがapi.ServerInterfaceを実装していることをコンパイル時に検証します。
var _ api.ServerInterface = (*MarketDataHandler)(nil)

// NewMarketDataHandler は指定されたusecaseでMarketDataHandlerの新しいインスタンスを生成します。
func NewMarketDataHandler(uc MarketDataUsecase) *MarketDataHandler {
	return &MarketDataHandler{uc: uc}
}

// GetStockData は銘柄の現在値を返します。
//
// エンドポイント: GET /stock-data/:symbol
func (h *MarketDataHandler) GetStockData(c *gin.Context, symbol string) {
	h.relay(c, func(ctx context.Context) (json.RawMessage, error) {
		return h.uc.GetQuote(ctx, symbol)
	})
}

// GetMarketNews はマーケットニュースの配列を返します。
//
// エンドポイント: GET /market-news
func (h *MarketDataHandler) GetMarketNews(c *gin.Context) {
	h.relay(c, h.uc.GetMarketNews)
}

// GetCompanyNews は直近7日間の企業ニュースを返します。
//
// エンドポイント: GET /company/:symbol/news
func (h *MarketDataHandler) GetCompanyNews(c *gin.Context, symbol string) {
	h.relay(c, func(ctx context.Context) (json.RawMessage, error) {
		return h.uc.GetCompanyNews(ctx, symbol)
	})
}

// GetTodayTick は当日のティックデータを返します。
//
// エンドポイント: GET /today-tick/:symbol
func (h *MarketDataHandler) GetTodayTick(c *gin.Context, symbol string) {
	h.relay(c, func(ctx context.Context) (json.RawMessage, error) {
		return h.uc.GetTodayTicks(ctx, symbol)
	})
}

// GetWeekCandles は直近7日間の60分足を返します。
func (h *MarketDataHandler) GetWeekCandles(c *gin.Context, symbol string) {
	h.candles(c, symbol, entity.WindowWeek)
}

// GetOneMonthCandles は直近30日間の日足を返します。
func (h *MarketDataHandler) GetOneMonthCandles(c *gin.Context, symbol string) {
	h.candles(c, symbol, entity.WindowOneMonth)
}

// GetThreeMonthCandles は直近90日間の日足を返します。
func (h *MarketDataHandler) GetThreeMonthCandles(c *gin.Context, symbol string) {
	h.candles(c, symbol, entity.WindowThreeMonths)
}

// GetOneYearCandles は直近365日間の日足を返します。
func (h *MarketDataHandler) GetOneYearCandles(c *gin.Context, symbol string) {
	h.candles(c, symbol, entity.WindowOneYear)
}

// GetCompanyData は企業概要を返します。
//
// エンドポイント: GET /company-data/:symbol
func (h *MarketDataHandler) GetCompanyData(c *gin.Context, symbol string) {
	h.relay(c, func(ctx context.Context) (json.RawMessage, error) {
		return h.uc.GetCompanyOverview(ctx, symbol)
	})
}

func (h *MarketDataHandler) candles(c *gin.Context, symbol string, w entity.CandleWindow) {
	h.relay(c, func(ctx context.Context) (json.RawMessage, error) {
		return h.uc.GetCandles(ctx, symbol, w)
	})
}

// relay はusecaseを呼び出し、成功時は外部APIのJSONを加工せずに200で返します。
func (h *MarketDataHandler) relay(c *gin.Context, fetch func(ctx context.Context) (json.RawMessage, error)) {
	body, err := fetch(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// RespondError はエラーをapperrorの分類に従ってJSONのエラーレスポンスに変換します。
// ボディにはAppErrorのメッセージのみを出力し、原因エラーはログにだけ残します。
func RespondError(c *gin.Context, err error) {
	ae := apperror.From(err)
	status := ae.HTTPStatus()

	attrs := []any{"error", err, "code", ae.Code(), "path", c.Request.URL.Path}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}

	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: message(ae), Code: string(ae.Code())})
}

// BindErrorHandler はapi層のパラメータバインドエラーを400のINVALID_INPUTとして返します。
func BindErrorHandler(c *gin.Context, err error, _ int) {
	RespondError(c, apperror.Wrap(apperror.InvalidInput, "invalid path parameter", err))
}

// message はクライアントに返すメッセージです。Internal のエラーは固定文言になります。
func message(ae *apperror.AppError) string {
	if ae.Code() == apperror.Internal {
		return "internal server error"
	}
	return ae.Message()
}

package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface はプロキシの各ルートを処理するハンドラーです。
type ServerInterface interface {
	// GET /stock-data/{symbol}
	GetStockData(c *gin.Context, symbol string)
	// GET /market-news
	GetMarketNews(c *gin.Context)
	// GET /company/{symbol}/news
	GetCompanyNews(c *gin.Context, symbol string)
	// GET /today-tick/{symbol}
	GetTodayTick(c *gin.Context, symbol string)
	// GET /candlestick-data/week/{symbol}
	GetWeekCandles(c *gin.Context, symbol string)
	// GET /candlestick-data/one-month/{symbol}
	GetOneMonthCandles(c *gin.Context, symbol string)
	// GET /candlestick-data/three-months/{symbol}
	GetThreeMonthCandles(c *gin.Context, symbol string)
	// GET /candlestick-data/one-year/{symbol}
	GetOneYearCandles(c *gin.Context, symbol string)
	// GET /company-data/{symbol}
	GetCompanyData(c *gin.Context, symbol string)
}

// ServerInterfaceWrapper はパスパラメータをバインドしてから ServerInterface を呼び出します。
type ServerInterfaceWrapper struct {
	Handler      ServerInterface
	ErrorHandler func(*gin.Context, error, int)
}

// GinServerOptions は RegisterHandlersWithOptions の設定です。
type GinServerOptions struct {
	BaseURL      string
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlersWithOptions はBaseURL配下にすべてのルートを登録します。
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, ErrorResponse{Error: err.Error()})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:      si,
		ErrorHandler: errorHandler,
	}

	base := options.BaseURL
	router.GET(base+"/stock-data/:symbol", wrapper.withSymbol(si.GetStockData))
	router.GET(base+"/market-news", wrapper.GetMarketNews)
	router.GET(base+"/company/:symbol/news", wrapper.withSymbol(si.GetCompanyNews))
	router.GET(base+"/today-tick/:symbol", wrapper.withSymbol(si.GetTodayTick))
	router.GET(base+"/candlestick-data/week/:symbol", wrapper.withSymbol(si.GetWeekCandles))
	router.GET(base+"/candlestick-data/one-month/:symbol", wrapper.withSymbol(si.GetOneMonthCandles))
	router.GET(base+"/candlestick-data/three-months/:symbol", wrapper.withSymbol(si.GetThreeMonthCandles))
	router.GET(base+"/candlestick-data/one-year/:symbol", wrapper.withSymbol(si.GetOneYearCandles))
	router.GET(base+"/company-data/:symbol", wrapper.withSymbol(si.GetCompanyData))
}

// GetMarketNews はパラメータを持たないため、そのまま委譲します。
func (siw *ServerInterfaceWrapper) GetMarketNews(c *gin.Context) {
	siw.Handler.GetMarketNews(c)
}

// withSymbol は "symbol" パスパラメータをバインドして next を呼び出すハンドラーを返します。
func (siw *ServerInterfaceWrapper) withSymbol(next func(*gin.Context, string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ginはパスをデコード済みなので、runtimeのPathUnescapeと対になるよう再エスケープする
		var symbol string
		err := runtime.BindStyledParameterWithOptions("simple", "symbol", url.PathEscape(c.Param("symbol")), &symbol,
			runtime.BindStyledParameterOptions{
				ParamLocation: runtime.ParamLocationPath,
				Explode:       false,
				Required:      true,
			})
		if err != nil {
			siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter symbol: %w", err), http.StatusBadRequest)
			return
		}
		next(c, symbol)
	}
}

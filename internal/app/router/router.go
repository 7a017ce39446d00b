// Package router はginエンジンを組み立て、すべてのルートを登録します。
package router

import (
	"github.com/gin-gonic/gin"

	"stock_proxy/internal/api"
	mdhandler "stock_proxy/internal/feature/marketdata/transport/handler"
	platformhandler "stock_proxy/internal/platform/http/handler"
	"stock_proxy/internal/platform/http/middleware"
)

// NewRouter はミドルウェア、/healthz、マーケットデータの各ルートを登録したエンジンを返します。
// マーケットデータのルートは basePath 配下にマウントされます（空ならルート直下）。
func NewRouter(market api.ServerInterface, health *platformhandler.HealthHandler, basePath string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery())

	// 導通確認用
	health.Register(r)

	api.RegisterHandlersWithOptions(r, market, api.GinServerOptions{
		BaseURL:      basePath,
		ErrorHandler: mdhandler.BindErrorHandler,
	})

	return r
}

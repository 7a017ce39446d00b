// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_proxy/internal/api"
)

// HealthHandler は /healthz を処理します。外部APIには問い合わせません。
type HealthHandler struct {
	version string
}

// NewHealthHandler はレスポンスに含めるビルドバージョンを受け取ります。
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Handle はGETにはステータスとバージョン、HEADには200、OPTIONSには204を返します。
func (h *HealthHandler) Handle(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Header("Allow", "GET, HEAD, OPTIONS")
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok", Version: h.version})
	}
}

// Register は GET/HEAD/OPTIONS の /healthz を登録します。
func (h *HealthHandler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Handle)
	r.HEAD("/healthz", h.Handle)
	r.OPTIONS("/healthz", h.Handle)
}

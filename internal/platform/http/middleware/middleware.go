// Package middleware はルーター全体に適用するginミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stock_proxy/internal/api"
	"stock_proxy/internal/shared/apperror"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダーです。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// maxRequestIDLen を超える受信IDは破棄して採番し直します。
const maxRequestIDLen = 128

// RequestID は受信したX-Request-IDを引き継ぎ、無ければUUIDを採番します。
// IDはginのコンテキストとレスポンスヘッダーに設定されます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID は RequestID が設定したIDを返します。未設定なら空文字です。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog はリクエストごとにメソッド、パス、ステータス、処理時間をslogで出力します。
// クエリ文字列は出力しません。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start).String(),
			"requestID", GetRequestID(c),
		}
		if status >= http.StatusInternalServerError {
			slog.Error("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	}
}

// Recovery はpanicを捕捉して500のJSONエラーを返します。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path, "requestID", GetRequestID(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{
			Error: "internal server error",
			Code:  string(apperror.Internal),
		})
	})
}

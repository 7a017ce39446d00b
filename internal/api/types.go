// Package api defines the HTTP surface of the proxy: wire types, the handler
// interface and its gin route registration. The routes are described in api/openapi.yaml.
package api

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse は /healthz のレスポンスボディです。
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

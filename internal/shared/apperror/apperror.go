// Package apperror defines the error taxonomy shared by the proxy's layers.
package apperror

import (
	"errors"
	"net/http"
)

// Code はエラーの分類を表します。レスポンスボディの "code" にそのまま出力されます。
type Code string

const (
	// Configuration は起動時に必須設定（APIキーなど）が欠けていることを示します。
	Configuration Code = "CONFIGURATION"
	// InvalidInput はリクエストパラメータが不正であることを示します。
	InvalidInput Code = "INVALID_INPUT"
	// UpstreamUnavailable は外部APIへの通信失敗、または2xx以外の応答を示します。
	UpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"
	// UpstreamMalformedResponse は外部APIの応答ボディが有効なJSONでないことを示します。
	UpstreamMalformedResponse Code = "UPSTREAM_MALFORMED_RESPONSE"
	// Internal はそれ以外の想定外のエラーです。
	Internal Code = "INTERNAL"
)

// AppError はCodeとメッセージ、原因エラーを保持するエラー型です。
type AppError struct {
	code    Code
	message string
	err     error
}

// New は原因エラーを持たないAppErrorを生成します。
func New(code Code, message string) *AppError {
	return &AppError{code: code, message: message}
}

// Wrap は原因エラーを保持したAppErrorを生成します。
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{code: code, message: message, err: err}
}

func (e *AppError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *AppError) Unwrap() error   { return e.err }
func (e *AppError) Code() Code      { return e.code }
func (e *AppError) Message() string { return e.message }

// HTTPStatus はCodeに対応するHTTPステータスを返します。
func (e *AppError) HTTPStatus() int {
	switch e.code {
	case InvalidInput:
		return http.StatusBadRequest
	case UpstreamUnavailable, UpstreamMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// From はエラーチェーンからAppErrorを取り出します。
// AppErrorが含まれない場合は err を包んだInternalのAppErrorを返します。
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Wrap(Internal, "internal server error", err)
}

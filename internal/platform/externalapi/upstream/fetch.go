// Package upstream performs the single GET-and-relay call shared by every provider client.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"stock_proxy/internal/shared/apperror"
)

// secretParams はログに出力してはいけないクエリパラメータです。
var secretParams = map[string]struct{}{
	"token":  {},
	"apikey": {},
}

// Request は外部APIへの1回のGETリクエストを表します。
type Request struct {
	Provider string            // ログとエラーメッセージ用のプロバイダ名（例: "finnhub"）
	URL      string            // 絶対URL
	Query    map[string]string // クエリパラメータ（認証トークンを含む）
}

// Fetch はGETリクエストを1回だけ実行し、応答ボディを検証済みのJSONとして返します。
//
// 失敗は apperror に変換されます:
//   - 通信エラー、コンテキストのキャンセル、2xx以外の応答 → UpstreamUnavailable
//   - 空のボディ、不正なJSON → UpstreamMalformedResponse
func Fetch(ctx context.Context, client *resty.Client, req Request) (json.RawMessage, error) {
	start := time.Now()
	logger := slog.With("provider", req.Provider, "url", req.URL, "query", redact(req.Query))

	res, err := client.R().
		SetContext(ctx).
		SetQueryParams(req.Query).
		Get(req.URL)
	if err != nil {
		err = stripURL(err)
		logger.Warn("upstream request failed", "error", err, "duration", time.Since(start))
		return nil, apperror.Wrap(apperror.UpstreamUnavailable, req.Provider+" request failed", err)
	}

	logger = logger.With("status", res.StatusCode(), "duration", time.Since(start))
	if !res.IsSuccess() {
		logger.Warn("upstream returned non-2xx status")
		return nil, apperror.New(apperror.UpstreamUnavailable,
			fmt.Sprintf("%s http %d", req.Provider, res.StatusCode()))
	}

	body := res.Body()
	if len(body) == 0 || !json.Valid(body) {
		logger.Warn("upstream returned malformed JSON", "bytes", len(body))
		return nil, apperror.New(apperror.UpstreamMalformedResponse,
			req.Provider+" returned a body that is not valid JSON")
	}

	logger.Debug("upstream request ok", "bytes", len(body))
	return json.RawMessage(body), nil
}

// stripURL は *url.Error からURL（認証トークンを含む）を取り除いた原因エラーを返します。
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

// redact は認証情報を伏せたクエリパラメータのコピーを返します。
func redact(q map[string]string) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		if _, ok := secretParams[k]; ok {
			out[k] = "REDACTED"
			continue
		}
		out[k] = v
	}
	return out
}

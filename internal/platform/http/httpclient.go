package http

import (
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent は外部APIへのリクエストに付与するUser-Agentです。
const UserAgent = "stock-proxy/1.0"

const (
	dialTimeout  = 5 * time.Second
	maxIdleConns = 100
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
// FinnhubとAlpha Vantageのクライアントはそれぞれ1つずつ保持し、NewRestyClient で包んで使います。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout / Dialer.KeepAlive: TCP接続タイムアウトと接続の維持期間
//   - MaxIdleConns / IdleConnTimeout: アイドル接続の上限と維持期間
//   - MaxIdleConnsPerHost: 接続先は1〜2ホストのみなので、ホスト単位の上限を全体と同じ値にする
//   - ForceAttemptHTTP2: カスタムTransportでもHTTP/2を使う
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: 1回の外部API呼び出し全体のタイムアウト（UPSTREAM_TIMEOUT、デフォルト10秒）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること
//   - restyはこのTransportとTimeoutをそのまま使うため、resty側ではタイムアウトを設定しない
//   - リクエストのコンテキストが先にキャンセルされた場合はClient.Timeoutより前に中断される
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConns,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: dialTimeout,
		},
	}
}

// NewRestyClient は NewHTTPClient のクライアントをrestyでラップして返します。
// リトライは行いません（resty のデフォルトのリトライ回数0のまま）。
func NewRestyClient(hc *http.Client) *resty.Client {
	return resty.NewWithClient(hc).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json")
}

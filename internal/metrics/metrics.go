// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// HTTPリクエストと認証イベントの両方を記録する。
type Collector struct {
	httpRequests   *prometheus.CounterVec
	requestLatency prometheus.Histogram
	tokensIssued   prometheus.Counter
	authFailures   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "miniblog_http_requests_total",
			Help: "HTTPメソッドとステータスコード別のリクエスト数",
		}, []string{"method", "status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "miniblog_http_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "miniblog_tokens_issued_total",
			Help: "発行されたJWTトークンの合計数",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "miniblog_auth_failures_total",
			Help: "認証失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.requestLatency,
		c.tokensIssued,
		c.authFailures,
	)

	return c
}

// RecordRequest はHTTPリクエストの完了を記録する。
func (c *Collector) RecordRequest(method string, statusCode int) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// RecordLatency はHTTPリクエストのレイテンシを記録する。
func (c *Collector) RecordLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordTokenIssued はJWTトークンの発行を記録する。
func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

// RecordAuthFailure は認証失敗を記録する。
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

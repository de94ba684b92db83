package middleware

import (
	"net/http"
	"time"
)

// HTTPMetricsRecorder はHTTPリクエストのメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type HTTPMetricsRecorder interface {
	RecordRequest(method string, statusCode int)
	RecordLatency(duration time.Duration)
}

// NewMetricsMiddleware はリクエストごとにメソッド別・ステータスコード別の
// カウンタとレイテンシを記録するミドルウェアを返す。
func NewMetricsMiddleware(recorder HTTPMetricsRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			recorder.RecordRequest(r.Method, rec.statusCode)
			recorder.RecordLatency(time.Since(start))
		})
	}
}

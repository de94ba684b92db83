package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// HealthPinger はヘルスチェックに必要なインターフェース。
// sql.DBの部分集合として定義する。
type HealthPinger interface {
	PingContext(ctx context.Context) error
}

// healthResponse はヘルスチェックのAPIレスポンス。
type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthHandler はデータベース接続を確認するヘルスチェックハンドラーを返す。
// GET /health
func NewHealthHandler(pinger HealthPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.PingContext(r.Context()); err != nil {
			slog.Error("health check failed",
				slog.String("error", err.Error()),
			)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

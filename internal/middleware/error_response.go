package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/miniblog/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// statusCodeと標準のステータス文言、およびエラーメッセージを含む。
type ErrorResponseBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// WriteError は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteError(w http.ResponseWriter, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		StatusCode: apiErr.Status,
		Error:      http.StatusText(apiErr.Status),
		Message:    apiErr.Message,
	})
}

// WriteServiceError はサービス層から返されたエラーをHTTPレスポンスに変換する。
// APIエラーでない場合は詳細をログのみに記録し、500を返す。
func WriteServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr)
		return
	}

	slog.Error("unexpected service error",
		slog.String("error", err.Error()),
	)
	WriteError(w, &model.APIError{
		Status:  http.StatusInternalServerError,
		Message: "An internal server error occurred",
	})
}

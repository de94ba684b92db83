// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/miniblog/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// TokenDecoder はベアラートークンの検証に必要なインターフェース。
// auth.TokenServiceの部分集合として定義する。
type TokenDecoder interface {
	Decode(token string) (int64, error)
}

// UserFinder はトークンに紐づくユーザーの存在確認に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証する
// ミドルウェアを返す。トークンは一度だけ復号し、認証済みユーザーIDを
// リクエストコンテキストに注入する。後続のハンドラーは再復号せずに
// UserIDFromContextで取り出す。
// ヘッダー欠落、不正トークン、ユーザー不在の場合は401を返す。
func NewAuthMiddleware(decoder TokenDecoder, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーからトークンを取得
			raw := r.Header.Get("Authorization")
			if raw == "" {
				WriteError(w, model.NewUnauthorized("Missing authentication"))
				return
			}
			// "Bearer "プレフィックスは任意。生トークンも受け付ける。
			token := strings.TrimPrefix(raw, "Bearer ")

			// 2. トークンを復号してユーザーIDを取り出す
			userID, err := decoder.Decode(token)
			if err != nil {
				WriteError(w, model.NewUnauthorized("Missing authentication"))
				return
			}

			// 3. トークンに紐づくユーザーの存在を確認
			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				slog.Error("failed to find user for token",
					slog.String("error", err.Error()),
				)
				WriteError(w, model.NewUnauthorized("Missing authentication"))
				return
			}
			if user == nil {
				WriteError(w, model.NewUnauthorized("Missing authentication"))
				return
			}

			// 4. 認証済みユーザーIDをコンテキストに注入
			ctx := ContextWithUserID(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext はリクエストコンテキストから認証済みユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	if !ok || userID == 0 {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/miniblog/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenDecoder      middleware.TokenDecoder
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	MetricsRecorder   middleware.HTTPMetricsRecorder

	// 運用エンドポイント
	MetricsHandler http.Handler
	HealthPinger   HealthPinger

	// サービス
	AuthService    AuthServiceInterface
	PostService    PostServiceInterface
	CommentService CommentServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Recovery → SecurityHeaders → Metrics → CORS
//
// 書き込み系ルートは認証ミドルウェアとユーザー単位のレート制限の内側に、
// サインアップと認証はIP単位のレート制限の内側に配置する。
// 読み取り系ルート（GET /posts、GET コメント一覧）と匿名コメント投稿は認証不要。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService)
	postHandler := NewPostHandler(deps.PostService)
	commentHandler := NewCommentHandler(deps.CommentService)

	// --- 認証不要のルート ---

	// サインアップ・認証（IP単位のレート制限を追加）
	r.With(deps.RateLimiter.SignupMiddleware()).Post("/signup", authHandler.Signup)
	r.With(deps.RateLimiter.SignupMiddleware()).Post("/authenticate", authHandler.Authenticate)

	// 公開の読み取りと匿名コメント投稿
	r.Get("/posts", postHandler.ListPosts)
	r.Get("/posts/{postId}/comments", commentHandler.ListComments)
	r.Post("/posts/{postId}/comments", commentHandler.CreateComment)

	// 運用エンドポイント
	if deps.HealthPinger != nil {
		r.Get("/health", NewHealthHandler(deps.HealthPinger))
	}
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenDecoder, deps.UserFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Post("/posts", postHandler.CreatePost)
		r.Put("/posts/{postId}", postHandler.UpdatePost)
		r.Put("/posts/{postId}/comments/{commentId}", commentHandler.UpdateComment)
	})

	return r
}

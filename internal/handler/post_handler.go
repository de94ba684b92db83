package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// Create は投稿を作成する。actorIDとownerIDの一致を検証する。
	Create(ctx context.Context, actorID, ownerID int64, content string) (*model.Post, error)
	// Update は本人所有の投稿の本文を更新する。
	Update(ctx context.Context, postID, actorID int64, content string) (*model.Post, error)
	// List は全投稿を返す。
	List(ctx context.Context) ([]model.Post, error)
}

// PostHandler は投稿管理のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// createPostRequest は投稿作成リクエストのボディ。
// userIdは本文の帰属先で、認証済みユーザーと一致しなければならない。
type createPostRequest struct {
	UserID *int64 `json:"userId"`
	Post   string `json:"post"`
}

// updatePostRequest は投稿更新リクエストのボディ。
type updatePostRequest struct {
	Post string `json:"post"`
}

// parseIDParam はURLパスパラメータを数値IDとして解析する。
func parseIDParam(r *http.Request, name string) (int64, *model.APIError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.NewBadRequest(name + " must be a number")
	}
	return id, nil
}

// CreatePost は投稿作成を処理する。
// POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteError(w, model.NewUnauthorized("Missing authentication"))
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, model.NewBadRequest("Invalid request payload JSON format"))
		return
	}
	if req.UserID == nil {
		middleware.WriteError(w, model.NewBadRequest("userId is required"))
		return
	}
	if req.Post == "" {
		middleware.WriteError(w, model.NewBadRequest("post is required"))
		return
	}

	post, err := h.service.Create(r.Context(), actorID, *req.UserID, req.Post)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost は投稿更新を処理する。
// PUT /posts/{postId}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteError(w, model.NewUnauthorized("Missing authentication"))
		return
	}

	postID, apiErr := parseIDParam(r, "postId")
	if apiErr != nil {
		middleware.WriteError(w, apiErr)
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, model.NewBadRequest("Invalid request payload JSON format"))
		return
	}
	if req.Post == "" {
		middleware.WriteError(w, model.NewBadRequest("post is required"))
		return
	}

	post, err := h.service.Update(r.Context(), postID, actorID, req.Post)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// ListPosts は全投稿の一覧を処理する。認証不要。
// GET /posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	// 投稿ゼロ件でもJSON配列を返す
	if posts == nil {
		posts = []model.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}

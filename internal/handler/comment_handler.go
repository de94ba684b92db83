package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	// Create はコメントを作成する。userIDがnilの場合は匿名として扱う。
	Create(ctx context.Context, postID int64, userID *int64, content string) (*model.Comment, error)
	// Update は本人所有のコメントの本文を更新する。
	Update(ctx context.Context, postID, commentID, actorID int64, content string) (*model.Comment, error)
	// ListForPost は指定投稿のコメント一覧を返す。
	ListForPost(ctx context.Context, postID int64) ([]model.Comment, error)
}

// CommentHandler はコメント管理のHTTPハンドラー。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// createCommentRequest はコメント作成リクエストのボディ。
// userIdは省略可能で、省略時は匿名コメントとして記録される。
type createCommentRequest struct {
	UserID  *int64 `json:"userId"`
	Comment string `json:"comment"`
}

// updateCommentRequest はコメント更新リクエストのボディ。
type updateCommentRequest struct {
	Comment string `json:"comment"`
}

// CreateComment はコメント作成を処理する。認証不要。
// POST /posts/{postId}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, apiErr := parseIDParam(r, "postId")
	if apiErr != nil {
		middleware.WriteError(w, apiErr)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, model.NewBadRequest("Invalid request payload JSON format"))
		return
	}
	if req.Comment == "" {
		middleware.WriteError(w, model.NewBadRequest("comment is required"))
		return
	}

	comment, err := h.service.Create(r.Context(), postID, req.UserID, req.Comment)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// UpdateComment はコメント更新を処理する。
// PUT /posts/{postId}/comments/{commentId}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
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
	commentID, apiErr := parseIDParam(r, "commentId")
	if apiErr != nil {
		middleware.WriteError(w, apiErr)
		return
	}

	var req updateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, model.NewBadRequest("Invalid request payload JSON format"))
		return
	}
	if req.Comment == "" {
		middleware.WriteError(w, model.NewBadRequest("comment is required"))
		return
	}

	comment, err := h.service.Update(r.Context(), postID, commentID, actorID, req.Comment)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// ListComments は指定投稿のコメント一覧を処理する。認証不要。
// GET /posts/{postId}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, apiErr := parseIDParam(r, "postId")
	if apiErr != nil {
		middleware.WriteError(w, apiErr)
		return
	}

	comments, err := h.service.ListForPost(r.Context(), postID)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

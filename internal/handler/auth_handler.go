// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup は新規ユーザーを登録しトークンを発行する。
	Signup(ctx context.Context, username, password string) (string, error)
	// Authenticate は資格情報を検証しトークンを発行する。
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// AuthHandler はサインアップと認証のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// credentialsRequest はサインアップ・認証リクエストのボディ。
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse はトークン発行のAPIレスポンス。
type tokenResponse struct {
	Token string `json:"token"`
}

// decodeCredentials はリクエストボディを解析し、必須フィールドを検証する。
func decodeCredentials(r *http.Request) (*credentialsRequest, *model.APIError) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, model.NewBadRequest("Invalid request payload JSON format")
	}
	if req.Username == "" {
		return nil, model.NewBadRequest("username is required")
	}
	if req.Password == "" {
		return nil, model.NewBadRequest("password is required")
	}
	return &req, nil
}

// Signup は新規ユーザー登録を処理する。
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, apiErr := decodeCredentials(r)
	if apiErr != nil {
		middleware.WriteError(w, apiErr)
		return
	}

	token, err := h.service.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// Authenticate は既存ユーザーの認証を処理する。
// POST /authenticate
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	req, apiErr := decodeCredentials(r)
	if apiErr != nil {
		middleware.WriteError(w, apiErr)
		return
	}

	token, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

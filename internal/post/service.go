// Package post は投稿のCRUDとオーナーシップ確認のビジネスロジックを提供する。
package post

import (
	"context"
	"log/slog"

	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/repository"
	"github.com/hitoshi/miniblog/internal/security"
)

// Service は投稿に関するビジネスロジックを提供する。
type Service struct {
	posts     repository.PostRepository
	sanitizer security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(posts repository.PostRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		posts:     posts,
		sanitizer: sanitizer,
	}
}

// Create は認証済みユーザーの新規投稿を作成する。
// actorIDは認証ミドルウェアが復号したトークン内のユーザーID。
// 自分以外のユーザーIDを指定した投稿は作成できない。
func (s *Service) Create(ctx context.Context, actorID, ownerID int64, content string) (*model.Post, error) {
	if actorID != ownerID {
		return nil, model.NewUnauthorized("user must make their own post")
	}

	created, err := s.posts.Create(ctx, s.sanitizer.Sanitize(content), ownerID)
	if err != nil {
		slog.Error("post creation failed",
			slog.Int64("user_id", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBadData("unable to save post")
	}

	return created, nil
}

// LoadOwned はidとactorIDの両方が一致する投稿を取得するオーナーシップガード。
// 一致する投稿が存在しない（投稿が無い、または他人の投稿）場合は404を返す。
func (s *Service) LoadOwned(ctx context.Context, postID, actorID int64) (*model.Post, error) {
	found, err := s.posts.FindByIDAndUser(ctx, postID, actorID)
	if err != nil {
		slog.Error("post ownership lookup failed",
			slog.Int64("post_id", postID),
			slog.Int64("user_id", actorID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBadGateway("unable to connect to db")
	}
	if found == nil {
		return nil, model.NewNotFound("post by user not found")
	}

	return found, nil
}

// Update はオーナーシップ確認の後に投稿本文を更新する。
func (s *Service) Update(ctx context.Context, postID, actorID int64, content string) (*model.Post, error) {
	owned, err := s.LoadOwned(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.UpdateContent(ctx, owned.ID, s.sanitizer.Sanitize(content))
	if err != nil {
		slog.Error("post update failed",
			slog.Int64("post_id", owned.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBadData("unable to update post")
	}

	return updated, nil
}

// List は全投稿を返す。
func (s *Service) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		slog.Error("post listing failed", slog.String("error", err.Error()))
		return nil, model.NewBadGateway("unable to connect to database")
	}

	return posts, nil
}

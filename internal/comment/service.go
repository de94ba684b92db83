// Package comment はコメントのCRUDとオーナーシップ確認のビジネスロジックを提供する。
package comment

import (
	"context"
	"log/slog"

	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/repository"
	"github.com/hitoshi/miniblog/internal/security"
)

// Service はコメントに関するビジネスロジックを提供する。
type Service struct {
	comments  repository.CommentRepository
	sanitizer security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(comments repository.CommentRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		comments:  comments,
		sanitizer: sanitizer,
	}
}

// Create は投稿へのコメントを作成する。認証は不要。
// userIDがnilの場合はmodel.AnonymousUserIDで永続化する（匿名コメント）。
func (s *Service) Create(ctx context.Context, postID int64, userID *int64, content string) (*model.Comment, error) {
	ownerID := model.AnonymousUserID
	if userID != nil {
		ownerID = *userID
	}

	created, err := s.comments.Create(ctx, s.sanitizer.Sanitize(content), ownerID, postID)
	if err != nil {
		slog.Error("comment creation failed",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBadData("unable to save comment")
	}

	return created, nil
}

// LoadOwned はid・actorID・postIDの三つ全てが一致するコメントを取得するオーナーシップガード。
// どれか一つでも一致しなければ404を返す。コメントは作成時と同じ投稿の配下でしか
// 編集できず、匿名コメント（user_id = 0）は認証済み経路から到達できない。
func (s *Service) LoadOwned(ctx context.Context, postID, commentID, actorID int64) (*model.Comment, error) {
	found, err := s.comments.FindOwned(ctx, commentID, actorID, postID)
	if err != nil {
		slog.Error("comment ownership lookup failed",
			slog.Int64("comment_id", commentID),
			slog.Int64("post_id", postID),
			slog.Int64("user_id", actorID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBadGateway("unable to connect to db")
	}
	if found == nil {
		return nil, model.NewNotFound("comment by user for post not found")
	}

	return found, nil
}

// Update はオーナーシップ確認の後にコメント本文を更新する。
func (s *Service) Update(ctx context.Context, postID, commentID, actorID int64, content string) (*model.Comment, error) {
	owned, err := s.LoadOwned(ctx, postID, commentID, actorID)
	if err != nil {
		return nil, err
	}

	updated, err := s.comments.UpdateContent(ctx, owned.ID, s.sanitizer.Sanitize(content))
	if err != nil {
		slog.Error("comment update failed",
			slog.Int64("comment_id", owned.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBadData("unable to update comment")
	}

	return updated, nil
}

// ListForPost は指定投稿のコメント一覧を返す。
// 結果が空の場合は404を返す。この挙動では「投稿が存在しない」と
// 「投稿にコメントが無い」を区別できないが、観測可能な契約として維持する。
func (s *Service) ListForPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		slog.Error("comment listing failed",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBadGateway("issue connecting to database")
	}
	if len(comments) == 0 {
		return nil, model.NewNotFound("no post associated with comments")
	}

	return comments, nil
}

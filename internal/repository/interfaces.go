// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/miniblog/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はハッシュ済みパスワードと共にユーザーを作成し、採番済みレコードを返す。
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// Create は投稿を作成し、採番済みレコードを返す。
	Create(ctx context.Context, content string, userID int64) (*model.Post, error)

	// FindByIDAndUser はidとuser_idの両方が一致する投稿を取得する。
	// オーナーシップ確認用。見つからない場合はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID int64) (*model.Post, error)

	// UpdateContent は投稿本文を更新し、更新後のレコードを返す。
	UpdateContent(ctx context.Context, id int64, content string) (*model.Post, error)

	// ListAll は全投稿を作成日時昇順で返す。
	ListAll(ctx context.Context) ([]model.Post, error)
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// Create はコメントを作成し、採番済みレコードを返す。
	// userIDにはmodel.AnonymousUserIDを渡すことで匿名コメントを表す。
	Create(ctx context.Context, content string, userID, postID int64) (*model.Comment, error)

	// FindOwned はid・user_id・post_idの三つ全てが一致するコメントを取得する。
	// オーナーシップ確認用。見つからない場合はnilを返す。
	FindOwned(ctx context.Context, id, userID, postID int64) (*model.Comment, error)

	// UpdateContent はコメント本文を更新し、更新後のレコードを返す。
	UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error)

	// ListByPost は指定投稿のコメント一覧を作成日時昇順で返す。
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}

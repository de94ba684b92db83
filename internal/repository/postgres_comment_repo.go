package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/miniblog/internal/model"
)

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// Create はコメントを作成し、採番済みレコードを返す。
func (r *PostgresCommentRepo) Create(ctx context.Context, content string, userID, postID int64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comments (content, user_id, post_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, content, user_id, post_id, created_at, updated_at`,
		content, userID, postID,
	).Scan(&comment.ID, &comment.Content, &comment.UserID, &comment.PostID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return comment, nil
}

// FindOwned はid・user_id・post_idの三つ全てが一致するコメントを取得する。
// 見つからない場合はnilを返す。
func (r *PostgresCommentRepo) FindOwned(ctx context.Context, id, userID, postID int64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, content, user_id, post_id, created_at, updated_at
		 FROM comments WHERE id = $1 AND user_id = $2 AND post_id = $3`,
		id, userID, postID,
	).Scan(&comment.ID, &comment.Content, &comment.UserID, &comment.PostID, &comment.CreatedAt, &comment.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find owned comment: %w", err)
	}

	return comment, nil
}

// UpdateContent はコメント本文を更新し、更新後のレコードを返す。
func (r *PostgresCommentRepo) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE comments SET content = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, content, user_id, post_id, created_at, updated_at`,
		id, content,
	).Scan(&comment.ID, &comment.Content, &comment.UserID, &comment.PostID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// ListByPost は指定投稿のコメント一覧を作成日時昇順で返す。
func (r *PostgresCommentRepo) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, user_id, post_id, created_at, updated_at
		 FROM comments WHERE post_id = $1 ORDER BY created_at ASC, id ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.Content, &comment.UserID, &comment.PostID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)

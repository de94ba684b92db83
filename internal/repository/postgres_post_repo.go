package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/miniblog/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// Create は投稿を作成し、採番済みレコードを返す。
func (r *PostgresPostRepo) Create(ctx context.Context, content string, userID int64) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (content, user_id)
		 VALUES ($1, $2)
		 RETURNING id, content, user_id, created_at, updated_at`,
		content, userID,
	).Scan(&post.ID, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// FindByIDAndUser はidとuser_idの両方が一致する投稿を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByIDAndUser(ctx context.Context, id, userID int64) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, content, user_id, created_at, updated_at
		 FROM posts WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&post.ID, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID and user: %w", err)
	}

	return post, nil
}

// UpdateContent は投稿本文を更新し、更新後のレコードを返す。
func (r *PostgresPostRepo) UpdateContent(ctx context.Context, id int64, content string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE posts SET content = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, content, user_id, created_at, updated_at`,
		id, content,
	).Scan(&post.ID, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// ListAll は全投稿を作成日時昇順で返す。
func (r *PostgresPostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, user_id, created_at, updated_at
		 FROM posts ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(&post.ID, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)

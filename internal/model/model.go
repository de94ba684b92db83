// Package model はドメインモデルを定義する。
package model

import "time"

// AnonymousUserID は匿名コメントのオーナーを表す番兵値。
// usersテーブルのIDはBIGSERIAL（1始まり）のため実ユーザーと衝突しない。
const AnonymousUserID int64 = 0

// User はサービス利用ユーザーを表す。
// Passwordにはbcrypt済みハッシュのみを保持し、JSONには含めない。
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Post はユーザーの投稿を表す。
// UserIDは作成時に確定し、以後変更されない。
type Post struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment は投稿へのコメントを表す。
// UserIDがAnonymousUserIDの場合は匿名コメントを意味する。
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	PostID    int64     `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

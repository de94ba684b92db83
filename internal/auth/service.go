// Package auth はユーザー登録、認証情報の検証、セッショントークンの発行を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/repository"
)

// TokenIssuer はトークン発行のインターフェース。
type TokenIssuer interface {
	// Issue は指定ユーザーIDの署名済みトークンを発行する。
	Issue(userID int64) (string, error)
}

// MetricsRecorder は認証関連メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordTokenIssued()
	RecordAuthFailure()
}

// nopMetrics は何も記録しないMetricsRecorder。
type nopMetrics struct{}

func (nopMetrics) RecordTokenIssued() {}
func (nopMetrics) RecordAuthFailure() {}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	users   repository.UserRepository
	hasher  PasswordHasher
	tokens  TokenIssuer
	metrics MetricsRecorder
}

// NewService はServiceを生成する。metricsはnilを許容する。
func NewService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, metrics MetricsRecorder) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		metrics: metrics,
	}
}

// VerifyCredentials は提出されたユーザー名・パスワードを保存済み認証情報と照合する。
// 失敗はすべて呼び出し箇所ごとに定められたAPIErrorにマッピングする。
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		slog.Error("credential lookup failed", slog.String("error", err.Error()))
		return nil, model.NewBadGateway("unable to connect to database")
	}
	if user == nil {
		return nil, model.NewNotFound("username not found")
	}

	ok, err := s.hasher.Compare(password, user.Password)
	if err != nil {
		return nil, model.NewBadRequest("invalid password")
	}
	if !ok {
		return nil, model.NewBadRequest("incorrect password for username")
	}

	return user, nil
}

// Authenticate は認証情報を検証し、成功時にセッショントークンを発行する。
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		s.metrics.RecordAuthFailure()
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.RecordTokenIssued()
	slog.Info("user authenticated", slog.Int64("user_id", user.ID))
	return token, nil
}

// Signup は新規ユーザーを作成し、セッショントークンを発行する。
// ユーザー名の一意性確認 → パスワードハッシュ化 → 保存 → トークン発行の順に行う。
func (s *Service) Signup(ctx context.Context, username, password string) (string, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		slog.Error("username uniqueness check failed", slog.String("error", err.Error()))
		return "", model.NewBadGateway("unable to connect to database")
	}
	if existing != nil {
		return "", model.NewBadRequest("username taken")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		slog.Error("password hashing failed", slog.String("error", err.Error()))
		return "", model.NewBadGateway("unable to save user")
	}

	user, err := s.users.Create(ctx, username, hashed)
	if err != nil {
		slog.Error("user creation failed", slog.String("error", err.Error()))
		return "", model.NewBadGateway("unable to save user")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.RecordTokenIssued()
	slog.Info("new user created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return token, nil
}

// compile-time interface check
var _ TokenIssuer = (*TokenService)(nil)

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultTokenTTL はトークンの既定有効期間。
const defaultTokenTTL = time.Hour

// TokenConfig はトークンサービスの設定。
// 秘密鍵とアルゴリズムは構築時に明示的に渡し、グローバル状態には置かない。
type TokenConfig struct {
	Secret []byte        // HMAC署名鍵
	TTL    time.Duration // トークン有効期間（0以下の場合はdefaultTokenTTL）
}

// Claims はトークンに埋め込むクレームを表す。
// idクレームにユーザーIDを保持する。
type Claims struct {
	ID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenService はHS256署名のセッショントークンの発行と検証を提供する。
type TokenService struct {
	config TokenConfig
	now    func() time.Time
}

// NewTokenService はTokenServiceを生成する。
func NewTokenService(config TokenConfig) *TokenService {
	if config.TTL <= 0 {
		config.TTL = defaultTokenTTL
	}
	return &TokenService{
		config: config,
		now:    time.Now,
	}
}

// Issue は指定ユーザーIDを埋め込んだ署名済みトークンを発行する。
// 有効期限は発行時刻 + TTL。
func (s *TokenService) Issue(userID int64) (string, error) {
	now := s.now()
	claims := &Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Decode はトークンの署名と有効期限を検証し、埋め込まれたユーザーIDを返す。
// 署名不正・期限切れ・アルゴリズム不一致はすべてエラーになる。
func (s *TokenService) Decode(tokenString string) (int64, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.config.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	return claims.ID, nil
}

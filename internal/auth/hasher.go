package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はパスワードの一方向ハッシュ化と照合のインターフェース。
type PasswordHasher interface {
	// Hash は平文パスワードのハッシュを生成する。
	Hash(password string) (string, error)

	// Compare は平文パスワードをハッシュと照合する。
	// 不一致は(false, nil)、照合処理自体の失敗はエラーを返す。
	Compare(password, hash string) (bool, error)
}

// BcryptHasher はbcryptを使用したPasswordHasherの実装。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher はBcryptHasherを生成する。
// costが範囲外の場合はbcrypt.DefaultCostを使用する。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash は平文パスワードのbcryptハッシュを生成する。
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare は平文パスワードをbcryptハッシュと照合する。
func (h *BcryptHasher) Compare(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	// ハッシュ形式不正などの照合処理自体の失敗
	return false, fmt.Errorf("failed to compare password: %w", err)
}

// compile-time interface check
var _ PasswordHasher = (*BcryptHasher)(nil)

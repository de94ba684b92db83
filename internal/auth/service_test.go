package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/hitoshi/miniblog/internal/model"
)

// --- モック定義 ---

// mockUserRepo はrepository.UserRepositoryのモック実装。
type mockUserRepo struct {
	findByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	createFn         func(ctx context.Context, username, passwordHash string) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &model.User{ID: 1, Username: username, Password: passwordHash}, nil
}

// mockHasher はPasswordHasherのモック実装。
type mockHasher struct {
	hashFn    func(password string) (string, error)
	compareFn func(password, hash string) (bool, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFn != nil {
		return m.hashFn(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(password, hash string) (bool, error) {
	if m.compareFn != nil {
		return m.compareFn(password, hash)
	}
	return true, nil
}

// mockIssuer はTokenIssuerのモック実装。
type mockIssuer struct {
	issueFn func(userID int64) (string, error)
}

func (m *mockIssuer) Issue(userID int64) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(userID)
	}
	return "token-for-user", nil
}

// countingMetrics はMetricsRecorderの呼び出し回数を記録する。
type countingMetrics struct {
	tokensIssued int
	authFailures int
}

func (c *countingMetrics) RecordTokenIssued() { c.tokensIssued++ }
func (c *countingMetrics) RecordAuthFailure() { c.authFailures++ }

func apiErrorFrom(t *testing.T, err error) *model.APIError {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T: %v", err, err)
	}
	return apiErr
}

// --- VerifyCredentials ---

func TestVerifyCredentials_Success_ReturnsUser(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username != "vic" {
				t.Errorf("username = %q, want %q", username, "vic")
			}
			return &model.User{ID: 1, Username: "vic", Password: "stored-hash"}, nil
		},
	}
	hasher := &mockHasher{
		compareFn: func(password, hash string) (bool, error) {
			if hash != "stored-hash" {
				t.Errorf("hash = %q, want %q", hash, "stored-hash")
			}
			return true, nil
		},
	}
	svc := NewService(users, hasher, &mockIssuer{}, nil)

	user, err := svc.VerifyCredentials(context.Background(), "vic", "test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user.ID = %d, want %d", user.ID, 1)
	}
}

func TestVerifyCredentials_UnknownUsername_Returns404(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := NewService(users, &mockHasher{}, &mockIssuer{}, nil)

	_, err := svc.VerifyCredentials(context.Background(), "waldo", "notfound")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusNotFound)
	}
	if apiErr.Message != "username not found" {
		t.Errorf("message = %q, want %q", apiErr.Message, "username not found")
	}
}

func TestVerifyCredentials_WrongPassword_Returns400(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 1, Username: "vic", Password: "stored-hash"}, nil
		},
	}
	hasher := &mockHasher{
		compareFn: func(password, hash string) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(users, hasher, &mockIssuer{}, nil)

	_, err := svc.VerifyCredentials(context.Background(), "vic", "wrong pass")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadRequest)
	}
	if apiErr.Message != "incorrect password for username" {
		t.Errorf("message = %q, want %q", apiErr.Message, "incorrect password for username")
	}
}

func TestVerifyCredentials_ComparatorFault_Returns400InvalidPassword(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 1, Username: "vic", Password: "broken"}, nil
		},
	}
	hasher := &mockHasher{
		compareFn: func(password, hash string) (bool, error) {
			return false, errors.New("comparator exploded")
		},
	}
	svc := NewService(users, hasher, &mockIssuer{}, nil)

	_, err := svc.VerifyCredentials(context.Background(), "vic", "invalid pass")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadRequest)
	}
	if apiErr.Message != "invalid password" {
		t.Errorf("message = %q, want %q", apiErr.Message, "invalid password")
	}
}

func TestVerifyCredentials_LookupFault_Returns502(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(users, &mockHasher{}, &mockIssuer{}, nil)

	_, err := svc.VerifyCredentials(context.Background(), "vic", "test")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadGateway)
	}
	if apiErr.Message != "unable to connect to database" {
		t.Errorf("message = %q, want %q", apiErr.Message, "unable to connect to database")
	}
}

// --- Authenticate ---

func TestAuthenticate_Success_ReturnsToken(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 7, Username: "vic", Password: "stored-hash"}, nil
		},
	}
	issuer := &mockIssuer{
		issueFn: func(userID int64) (string, error) {
			if userID != 7 {
				t.Errorf("issued for userID = %d, want %d", userID, 7)
			}
			return "signed-token", nil
		},
	}
	metrics := &countingMetrics{}
	svc := NewService(users, &mockHasher{}, issuer, metrics)

	token, err := svc.Authenticate(context.Background(), "vic", "test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token != "signed-token" {
		t.Errorf("token = %q, want %q", token, "signed-token")
	}
	if metrics.tokensIssued != 1 {
		t.Errorf("tokensIssued = %d, want %d", metrics.tokensIssued, 1)
	}
}

func TestAuthenticate_Failure_RecordsAuthFailure(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, nil
		},
	}
	metrics := &countingMetrics{}
	svc := NewService(users, &mockHasher{}, &mockIssuer{}, metrics)

	if _, err := svc.Authenticate(context.Background(), "waldo", "x"); err == nil {
		t.Fatal("expected error, got nil")
	}
	if metrics.authFailures != 1 {
		t.Errorf("authFailures = %d, want %d", metrics.authFailures, 1)
	}
}

// --- Signup ---

func TestSignup_NewUsername_CreatesUserAndReturnsToken(t *testing.T) {
	var persistedHash string
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*model.User, error) {
			persistedHash = passwordHash
			return &model.User{ID: 42, Username: username, Password: passwordHash}, nil
		},
	}
	issuer := &mockIssuer{
		issueFn: func(userID int64) (string, error) {
			if userID != 42 {
				t.Errorf("issued for userID = %d, want %d", userID, 42)
			}
			return "new-user-token", nil
		},
	}
	svc := NewService(users, &mockHasher{}, issuer, nil)

	token, err := svc.Signup(context.Background(), "vic", "plaintext")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token != "new-user-token" {
		t.Errorf("token = %q, want %q", token, "new-user-token")
	}

	// 平文がそのまま保存されないこと
	if persistedHash == "plaintext" {
		t.Error("password persisted as plaintext")
	}
	if persistedHash != "hashed:plaintext" {
		t.Errorf("persistedHash = %q, want %q", persistedHash, "hashed:plaintext")
	}
}

func TestSignup_UsernameTaken_Returns400AndDoesNotCreate(t *testing.T) {
	createCalled := false
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 1, Username: username}, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*model.User, error) {
			createCalled = true
			return nil, nil
		},
	}
	svc := NewService(users, &mockHasher{}, &mockIssuer{}, nil)

	_, err := svc.Signup(context.Background(), "vic", "test")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadRequest)
	}
	if apiErr.Message != "username taken" {
		t.Errorf("message = %q, want %q", apiErr.Message, "username taken")
	}
	if createCalled {
		t.Error("expected no user creation for taken username")
	}
}

func TestSignup_UniquenessLookupFault_Returns502(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(users, &mockHasher{}, &mockIssuer{}, nil)

	_, err := svc.Signup(context.Background(), "vic", "test")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadGateway)
	}
	if apiErr.Message != "unable to connect to database" {
		t.Errorf("message = %q, want %q", apiErr.Message, "unable to connect to database")
	}
}

func TestSignup_CreateFault_Returns502UnableToSaveUser(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*model.User, error) {
			return nil, errors.New("insert failed")
		},
	}
	svc := NewService(users, &mockHasher{}, &mockIssuer{}, nil)

	_, err := svc.Signup(context.Background(), "vic", "test")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadGateway)
	}
	if apiErr.Message != "unable to save user" {
		t.Errorf("message = %q, want %q", apiErr.Message, "unable to save user")
	}
}

func TestSignup_HashFault_Returns502UnableToSaveUser(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, nil
		},
	}
	hasher := &mockHasher{
		hashFn: func(password string) (string, error) {
			return "", errors.New("hash failed")
		},
	}
	svc := NewService(users, hasher, &mockIssuer{}, nil)

	_, err := svc.Signup(context.Background(), "vic", "test")
	apiErr := apiErrorFrom(t, err)
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadGateway)
	}
	if apiErr.Message != "unable to save user" {
		t.Errorf("message = %q, want %q", apiErr.Message, "unable to save user")
	}
}

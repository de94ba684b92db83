package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/miniblog/internal/model"
)

// mockTokenDecoder はTokenDecoderのテスト用モック。
type mockTokenDecoder struct {
	decodeFunc func(token string) (int64, error)
}

func (m *mockTokenDecoder) Decode(token string) (int64, error) {
	return m.decodeFunc(token)
}

// mockUserFinder はUserFinderのテスト用モック。
type mockUserFinder struct {
	findByIDFunc func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return m.findByIDFunc(ctx, id)
}

func okHandler(t *testing.T, gotUserID *int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := UserIDFromContext(r.Context())
		if err != nil {
			t.Errorf("UserIDFromContext() error = %v", err)
		}
		*gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})
}

func assertMissingAuthentication(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body.Message != "Missing authentication" {
		t.Errorf("message = %q, want %q", body.Message, "Missing authentication")
	}
	if body.StatusCode != http.StatusUnauthorized {
		t.Errorf("statusCode = %d, want %d", body.StatusCode, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	decoder := &mockTokenDecoder{
		decodeFunc: func(token string) (int64, error) {
			if token != "valid-token" {
				t.Errorf("Decode() token = %q, want %q", token, "valid-token")
			}
			return 42, nil
		},
	}
	users := &mockUserFinder{
		findByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "alice"}, nil
		},
	}

	var gotUserID int64
	handler := NewAuthMiddleware(decoder, users)(okHandler(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "valid-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUserID != 42 {
		t.Errorf("user ID in context = %d, want 42", gotUserID)
	}
}

func TestAuthMiddleware_BearerPrefixStripped(t *testing.T) {
	decoder := &mockTokenDecoder{
		decodeFunc: func(token string) (int64, error) {
			if token != "valid-token" {
				t.Errorf("Decode() token = %q, want %q", token, "valid-token")
			}
			return 7, nil
		},
	}
	users := &mockUserFinder{
		findByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}

	var gotUserID int64
	handler := NewAuthMiddleware(decoder, users)(okHandler(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUserID != 7 {
		t.Errorf("user ID in context = %d, want 7", gotUserID)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	decoder := &mockTokenDecoder{
		decodeFunc: func(token string) (int64, error) {
			t.Error("Decode() should not be called")
			return 0, nil
		},
	}
	users := &mockUserFinder{
		findByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
			t.Error("FindByID() should not be called")
			return nil, nil
		},
	}

	handler := NewAuthMiddleware(decoder, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assertMissingAuthentication(t, rec)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	decoder := &mockTokenDecoder{
		decodeFunc: func(token string) (int64, error) {
			return 0, fmt.Errorf("token is malformed")
		},
	}
	users := &mockUserFinder{
		findByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
			t.Error("FindByID() should not be called")
			return nil, nil
		},
	}

	handler := NewAuthMiddleware(decoder, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assertMissingAuthentication(t, rec)
}

func TestAuthMiddleware_UserNotFound(t *testing.T) {
	decoder := &mockTokenDecoder{
		decodeFunc: func(token string) (int64, error) {
			return 99, nil
		},
	}
	users := &mockUserFinder{
		findByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, nil
		},
	}

	handler := NewAuthMiddleware(decoder, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assertMissingAuthentication(t, rec)
}

func TestAuthMiddleware_UserLookupError(t *testing.T) {
	decoder := &mockTokenDecoder{
		decodeFunc: func(token string) (int64, error) {
			return 99, nil
		},
	}
	users := &mockUserFinder{
		findByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}

	handler := NewAuthMiddleware(decoder, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assertMissingAuthentication(t, rec)
}

func TestUserIDFromContext_NotSet(t *testing.T) {
	_, err := UserIDFromContext(context.Background())
	if err == nil {
		t.Error("UserIDFromContext() error = nil, want error")
	}
}

func TestContextWithUserID_RoundTrip(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), 123)

	userID, err := UserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("UserIDFromContext() error = %v", err)
	}
	if userID != 123 {
		t.Errorf("userID = %d, want 123", userID)
	}
}

package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/movie-shelf/internal/domain"
	"github.com/msomdec/movie-shelf/internal/repository/sqlite"
	"github.com/msomdec/movie-shelf/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4)
}

func TestAuthService_Register_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	token, user, err := auth.Register(ctx, "new@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected email new@example.com, got %s", user.Email)
	}
	if token == "" {
		t.Fatal("expected a token to be issued on registration")
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken on registration token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "dup@example.com", "password123")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err = auth.Register(ctx, "dup@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail_CaseInsensitive(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "case@example.com", "password123")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err = auth.Register(ctx, "CASE@Example.COM", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail for same email in different case, got %v", err)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "weak@example.com", "short")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"empty password", "a@b.com", ""},
		{"malformed email", "not-an-email", "password123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := auth.Register(ctx, tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if user.Email != "login@example.com" {
		t.Fatalf("expected email login@example.com, got %s", user.Email)
	}
}

func TestAuthService_Login_MixedCaseEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "mixed@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err = auth.Login(ctx, "Mixed@Example.com", "password123")
	if err != nil {
		t.Fatalf("Login with mixed-case email: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "wrongpw@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err = auth.Login(ctx, "wrongpw@example.com", "wrongpassword")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_JWT_GenerateAndValidate(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, user, err := auth.Register(ctx, "jwt@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, _, err := auth.Login(ctx, "jwt@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}
}

func TestAuthService_JWT_InvalidToken(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_JWT_TamperedToken(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	token, _, err := auth.Register(ctx, "tamper@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Tamper with the token by flipping several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	_, err = auth.ValidateToken(tampered)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_JWT_WrongSecret(t *testing.T) {
	auth1 := newTestAuthService(t)
	ctx := context.Background()

	token, _, err := auth1.Register(ctx, "secret@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// A second auth service with a different secret must reject the token.
	db2 := newTestDB(t)
	auth2 := service.NewAuthService(db2.Users(), "different-secret", 4)

	_, err = auth2.ValidateToken(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/movie-shelf/internal/handler"
	"github.com/msomdec/movie-shelf/internal/omdb"
	"github.com/msomdec/movie-shelf/internal/repository/sqlite"
	"github.com/msomdec/movie-shelf/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

// newTestServices wires the full service stack against a throwaway
// SQLite database. omdbURL points the search gateway at a fake upstream;
// tests that never search can pass any value.
func newTestServices(t *testing.T, omdbURL string) (*service.AuthService, *service.MovieService, *service.SearchService) {
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

	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	movies := service.NewMovieService(db.Movies())
	search := service.NewSearchService(omdb.NewClient(omdbURL, "test-key", 2*time.Second))
	return auth, movies, search
}

func TestRequireAuth_ValidToken(t *testing.T) {
	auth, _, _ := newTestServices(t, "http://omdb.invalid")
	ctx := context.Background()

	token, user, err := auth.Register(ctx, "valid@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	var gotEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := handler.UserFromContext(r.Context()); u != nil {
			gotEmail = u.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotEmail != user.Email {
		t.Fatalf("expected user %q in context, got %q", user.Email, gotEmail)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	auth, _, _ := newTestServices(t, "http://omdb.invalid")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	auth, _, _ := newTestServices(t, "http://omdb.invalid")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	for _, header := range []string{"Bearer", "Bearer ", "Basic dXNlcjpwdw==", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		handler.RequireAuth(auth, inner).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	auth, _, _ := newTestServices(t, "http://omdb.invalid")
	ctx := context.Background()

	token, _, err := auth.Register(ctx, "tamper@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	tampered := token[:len(token)-1] + "X"

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	auth, _, _ := newTestServices(t, "http://omdb.invalid")
	ctx := context.Background()

	_, user, err := auth.Register(ctx, "expired@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Sign a token with the right secret but an expiry in the past.
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestCORS_TrustedOrigin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := handler.CORS([]string{"http://localhost:5173"}, inner)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/list", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allow-origin to echo trusted origin, got %q", got)
	}
}

func TestCORS_UntrustedOrigin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := handler.CORS([]string{"http://localhost:5173"}, inner)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/list", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for untrusted origin, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight should not reach the inner handler")
	})
	h := handler.CORS([]string{"http://localhost:5173"}, inner)

	req := httptest.NewRequest(http.MethodOptions, "/api/movies/save", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatal("expected preflight to advertise allowed headers")
	}
}

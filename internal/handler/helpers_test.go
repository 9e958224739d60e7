package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/storage"
	"github.com/snnyvrz/shelfshare/internal/testutil"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"gorm.io/gorm"
)

type fakeImages struct {
	UploadFn func(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	deleted  []string
}

func (f *fakeImages) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if f.UploadFn != nil {
		return f.UploadFn(ctx, r, folder, fileName)
	}
	return "https://res.cloudinary.com/demo/image/upload/v1/" + folder + "/" + fileName, nil
}

func (f *fakeImages) DeleteImage(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

type routerOptions struct {
	images   storage.ImageStorage
	bookRepo repository.BookRepository
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	return setupTestRouterWith(db, routerOptions{})
}

// setupTestRouterWith mounts every handler under /api the same way the
// server does, with optional replacements.
func setupTestRouterWith(db *gorm.DB, opts routerOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	users := repository.NewGormUserRepository(db)
	tokens := auth.NewTokenService(testutil.TestJWTSecret, time.Hour)
	sessions := auth.NewGormSessionStore(db)

	api := r.Group("/api", middleware.NewAuthMiddleware(users, tokens, sessions).Authenticate())

	bookRepo := opts.bookRepo
	if bookRepo == nil {
		bookRepo = repository.NewGormBookRepository(db)
	}
	bh := NewBookHandler(bookRepo)
	bh.RegisterRoutes(api)
	bh.RegisterLibraryRoutes(api)

	NewAuthorHandler(repository.NewAuthorRepository(db)).RegisterRoutes(api)
	NewLibraryHandler(repository.NewGormLibraryRepository(db)).RegisterRoutes(api)
	NewAuthHandler(users, tokens, sessions, auth.NewLoginThrottle(nil, 0, 0), AuthOptions{
		SessionTTL: time.Hour,
	}).RegisterRoutes(api)
	NewUserHandler(users, opts.images, "profile_photos").RegisterRoutes(api)
	NewGroupHandler(repository.NewGormGroupRepository(db)).RegisterRoutes(api)
	NewPostHandler(
		repository.NewGormPostRepository(db),
		repository.NewGormCommentRepository(db),
	).RegisterRoutes(api)

	return r
}

// do sends a JSON request. An empty token sends no Authorization header.
func do(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, _ := http.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response: %v, body=%s", err, w.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("expected status %d, got %d, body=%s", want, w.Code, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) validation.ErrorResponse {
	t.Helper()

	expectStatus(t, w, status)
	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("expected code %s, got %s", code, resp.Code)
	}
	return resp
}

func titles(items []BookListItem) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.Title)
	}
	return out
}

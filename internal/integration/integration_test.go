//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/config"
	"github.com/snnyvrz/shelfshare/internal/db"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/server"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const password = "integration1"

var (
	testDB     *gorm.DB
	testRouter *gin.Engine
)

func TestMain(m *testing.M) {
	cfg := config.Load()

	database, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	testDB = database

	if err := db.Migrate(database); err != nil {
		panic("failed to migrate: " + err.Error())
	}
	if err := repository.NewGormGroupRepository(database).SeedDefaults(context.Background()); err != nil {
		panic("failed to seed groups: " + err.Error())
	}

	cfg.GinMode = gin.TestMode
	testRouter = server.New(server.Deps{
		Config:    cfg,
		DB:        database,
		Logger:    zerolog.Nop(),
		StartTime: time.Now(),
	})

	code := m.Run()
	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}
	_, err = sqlDB.Exec("TRUNCATE TABLE comments, posts, library_books, librarians, libraries, books, authors, sessions, user_groups, user_permissions, users RESTART IDENTITY CASCADE;")
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

type client struct {
	t     *testing.T
	http  *http.Client
	base  string
	token string
}

func (c client) send(method, path string, payload any) (*http.Response, map[string]any) {
	c.t.Helper()

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			c.t.Fatalf("failed to marshal request: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		c.t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (c client) expect(method, path string, payload any, status int) map[string]any {
	c.t.Helper()

	resp, body := c.send(method, path, payload)
	if resp.StatusCode != status {
		c.t.Fatalf("%s %s: expected %d, got %d (%v)", method, path, status, resp.StatusCode, body)
	}
	return body
}

func data(body map[string]any) map[string]any {
	d, _ := body["data"].(map[string]any)
	return d
}

// login registers a user through the API and returns a client carrying its
// token.
func login(t *testing.T, srv *httptest.Server, email string) client {
	t.Helper()

	anon := client{t: t, http: srv.Client(), base: srv.URL}
	anon.expect(http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusCreated)

	body := anon.expect(http.MethodPost, "/api/auth/token", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK)

	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected a token, got %v", body)
	}
	anon.token = token
	return anon
}

func promoteToStaff(t *testing.T, email string) {
	t.Helper()
	if err := testDB.Model(&model.User{}).Where("email = ?", email).Update("is_staff", true).Error; err != nil {
		t.Fatalf("failed to promote %s: %v", email, err)
	}
}

func TestBookLifecycle_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	reader := login(t, srv, "reader@example.com")
	admin := login(t, srv, "admin@example.com")
	promoteToStaff(t, "admin@example.com")

	author := data(reader.expect(http.MethodPost, "/api/authors", map[string]any{"name": "george orwell"}, http.StatusCreated))
	if author["name"] != "George Orwell" {
		t.Fatalf("expected normalized author name, got %v", author["name"])
	}
	authorID, _ := author["id"].(string)

	reader.expect(http.MethodPost, "/api/books", map[string]any{
		"title": "Animal Farm", "author_id": authorID, "publication_year": 1945,
	}, http.StatusCreated)
	book := data(reader.expect(http.MethodPost, "/api/books", map[string]any{
		"title": "1984", "author_id": authorID, "publication_year": 1949,
	}, http.StatusCreated))
	bookID, _ := book["id"].(string)

	anon := client{t: t, http: srv.Client(), base: srv.URL}
	found := data(anon.expect(http.MethodGet, "/api/books/lookup?title=1984", nil, http.StatusOK))
	if found["id"] != bookID {
		t.Fatalf("expected lookup to find %s, got %v", bookID, found["id"])
	}

	reader.expect(http.MethodPatch, "/api/books/"+bookID, map[string]any{"title": "Nineteen Eighty-Four"}, http.StatusOK)
	anon.expect(http.MethodGet, "/api/books/lookup?title=1984", nil, http.StatusNotFound)
	anon.expect(http.MethodGet, "/api/books/lookup?title="+url.QueryEscape("Nineteen Eighty-Four"), nil, http.StatusOK)

	list := anon.expect(http.MethodGet, "/api/books?decade=1940&ordering=-publication_year", nil, http.StatusOK)
	items, _ := list["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 books in the 1940s, got %d", len(items))
	}
	if first, _ := items[0].(map[string]any); first["title"] != "Nineteen Eighty-Four" {
		t.Errorf("expected newest first, got %v", first["title"])
	}

	reader.expect(http.MethodDelete, "/api/books/"+bookID, nil, http.StatusForbidden)
	admin.expect(http.MethodDelete, "/api/authors/"+authorID, nil, http.StatusBadRequest)
	admin.expect(http.MethodDelete, "/api/books/"+bookID, nil, http.StatusNoContent)

	list = anon.expect(http.MethodGet, "/api/books", nil, http.StatusOK)
	pagination, _ := list["pagination"].(map[string]any)
	if pagination["total"] != float64(1) {
		t.Errorf("expected 1 book after delete, got %v", pagination["total"])
	}
}

func TestAuthorConstraints_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	reader := login(t, srv, "reader@example.com")

	reader.expect(http.MethodPost, "/api/authors", map[string]any{"name": "Ann Leckie"}, http.StatusCreated)
	_, body := reader.send(http.MethodPost, "/api/authors", map[string]any{"name": "ann leckie"})
	if body["code"] != "AUTHOR_EXISTS" {
		t.Errorf("expected AUTHOR_EXISTS from the unique index, got %v", body["code"])
	}

	_, body = reader.send(http.MethodPost, "/api/books", map[string]any{
		"title": "Ghost", "author_id": "7f1c3c1e-1d3a-4a8e-9f57-8e0c2b4f6a11", "publication_year": 2000,
	})
	if body["code"] != "AUTHOR_NOT_FOUND" {
		t.Errorf("expected AUTHOR_NOT_FOUND from the foreign key, got %v", body["code"])
	}
}

func TestLibraryCapabilities_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	viewer := login(t, srv, "viewer@example.com")
	admin := login(t, srv, "admin@example.com")
	promoteToStaff(t, "admin@example.com")

	viewer.expect(http.MethodGet, "/api/library/books", nil, http.StatusForbidden)

	me := data(viewer.expect(http.MethodGet, "/api/users/me", nil, http.StatusOK))
	admin.expect(http.MethodPost, "/api/groups/Book_Viewers/members", map[string]any{"user_id": me["id"]}, http.StatusNoContent)

	viewer.expect(http.MethodGet, "/api/library/books", nil, http.StatusOK)
	viewer.expect(http.MethodPost, "/api/library/books", map[string]any{}, http.StatusForbidden)
}

func TestSessionStore_Integration(t *testing.T) {
	resetDB(t)

	store := auth.NewGormSessionStore(testDB)
	user := model.User{Email: "s@example.com", IsActive: true}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	ctx := context.Background()
	key, err := store.Create(ctx, user.ID, time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	got, err := store.Lookup(ctx, key)
	if err != nil || got != user.ID {
		t.Fatalf("expected session for %s, got %s (%v)", user.ID, got, err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := store.Lookup(ctx, key); err != auth.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestHealth_Integration(t *testing.T) {
	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	anon := client{t: t, http: srv.Client(), base: srv.URL}
	anon.expect(http.MethodGet, "/health", nil, http.StatusOK)
	anon.expect(http.MethodGet, "/ready", nil, http.StatusOK)
}

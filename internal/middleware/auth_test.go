package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/apperror"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers map[uuid.UUID]*model.User

func (f fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSessions map[string]uuid.UUID

func (f fakeSessions) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	key := uuid.NewString()
	f[key] = userID
	return key, nil
}

func (f fakeSessions) Lookup(ctx context.Context, key string) (uuid.UUID, error) {
	if id, ok := f[key]; ok {
		return id, nil
	}
	return uuid.Nil, auth.ErrSessionNotFound
}

func (f fakeSessions) Delete(ctx context.Context, key string) error {
	delete(f, key)
	return nil
}

type fixture struct {
	router   *gin.Engine
	tokens   *auth.TokenService
	sessions fakeSessions
	active   *model.User
	inactive *model.User
	staff    *model.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	active := &model.User{ID: uuid.New(), Email: "a@example.com", IsActive: true}
	inactive := &model.User{ID: uuid.New(), Email: "i@example.com"}
	staff := &model.User{ID: uuid.New(), Email: "s@example.com", IsActive: true, IsStaff: true}
	users := fakeUsers{active.ID: active, inactive.ID: inactive, staff.ID: staff}

	tokens := auth.NewTokenService("middleware-secret", time.Hour)
	sessions := fakeSessions{}

	r := gin.New()
	r.Use(NewAuthMiddleware(users, tokens, sessions).Authenticate())
	r.GET("/whoami", func(c *gin.Context) {
		id := CurrentIdentity(c)
		if id == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.Email)
	})
	r.DELETE("/books", Require(access.BookPolicy, access.Delete, ""), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/boom", func(c *gin.Context) {
		Abort(c, errors.New("database exploded"))
	})

	return fixture{router: r, tokens: tokens, sessions: sessions, active: active, inactive: inactive, staff: staff}
}

func (f fixture) token(t *testing.T, u *model.User) string {
	t.Helper()
	tok, _, err := f.tokens.Issue(u.ID)
	require.NoError(t, err)
	return tok
}

func (f fixture) get(method, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp validation.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Code
}

func TestAuthenticate_Anonymous(t *testing.T) {
	f := newFixture(t)

	w := f.get(http.MethodGet, "/whoami", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestAuthenticate_Token(t *testing.T) {
	f := newFixture(t)

	w := f.get(http.MethodGet, "/whoami", bearer(f.token(t, f.active)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@example.com", w.Body.String())
}

func TestAuthenticate_Rejections(t *testing.T) {
	f := newFixture(t)
	stranger := &model.User{ID: uuid.New()}

	cases := []struct {
		name string
		req  func(*http.Request)
		code string
	}{
		{"garbage token", bearer("garbage"), "INVALID_CREDENTIALS"},
		{"unknown user", bearer(f.token(t, stranger)), "INVALID_CREDENTIALS"},
		{"inactive user", bearer(f.token(t, f.inactive)), "USER_INACTIVE"},
		{"wrong signature", bearer(func() string {
			tok, _, _ := auth.NewTokenService("other-secret", time.Hour).Issue(f.active.ID)
			return tok
		}()), "INVALID_CREDENTIALS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.get(http.MethodGet, "/whoami", tc.req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tc.code, errorCode(t, w))
			assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestAuthenticate_SessionCookie(t *testing.T) {
	f := newFixture(t)

	key, err := f.sessions.Create(context.Background(), f.active.ID, time.Hour)
	require.NoError(t, err)

	w := f.get(http.MethodGet, "/whoami", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: key})
	})
	assert.Equal(t, "a@example.com", w.Body.String())

	w = f.get(http.MethodGet, "/whoami", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "stale"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestRequire_Tiers(t *testing.T) {
	f := newFixture(t)

	w := f.get(http.MethodDelete, "/books", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NOT_AUTHENTICATED", errorCode(t, w))

	w = f.get(http.MethodDelete, "/books", bearer(f.token(t, f.active)))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "INSUFFICIENT_ROLE", errorCode(t, w))
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))

	w = f.get(http.MethodDelete, "/books", bearer(f.token(t, f.staff)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)

	w := f.get(http.MethodGet, "/admin", bearer(f.token(t, f.active)))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ADMIN_REQUIRED", errorCode(t, w))

	w = f.get(http.MethodGet, "/admin", bearer(f.token(t, f.staff)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAbort_HidesUnknownErrors(t *testing.T) {
	f := newFixture(t)

	w := f.get(http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "exploded")
}

func TestAbort_AppErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		Abort(c, apperror.Forbidden("NOPE", "not allowed"))
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOPE", errorCode(t, w))
}

type brokenUsers struct{}

func (brokenUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, errors.New("connection refused")
}

type brokenSessions struct{ fakeSessions }

func (brokenSessions) Lookup(ctx context.Context, key string) (uuid.UUID, error) {
	return uuid.Nil, errors.New("redis: connection pool timeout")
}

func whoamiRouter(users UserLoader, tokens *auth.TokenService, sessions auth.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(users, tokens, sessions).Authenticate())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "reached")
	})
	return r
}

func TestAuthenticate_StoreFailuresAreInternalErrors(t *testing.T) {
	tokens := auth.NewTokenService("middleware-secret", time.Hour)

	t.Run("user lookup fails", func(t *testing.T) {
		r := whoamiRouter(brokenUsers{}, tokens, fakeSessions{})
		tok, _, err := tokens.Issue(uuid.New())
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
		assert.Empty(t, w.Header().Get("WWW-Authenticate"))
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("session store fails", func(t *testing.T) {
		r := whoamiRouter(fakeUsers{}, tokens, brokenSessions{fakeSessions{}})

		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "some-key"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	})

	t.Run("missing user is still a credential error", func(t *testing.T) {
		r := whoamiRouter(fakeUsers{}, tokens, fakeSessions{})
		tok, _, err := tokens.Issue(uuid.New())
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
	})
}

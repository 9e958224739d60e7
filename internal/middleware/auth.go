package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/apperror"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"gorm.io/gorm"
)

const identityKey = "identity"

type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type AuthMiddleware struct {
	users    UserLoader
	tokens   *auth.TokenService
	sessions auth.SessionStore
}

func NewAuthMiddleware(users UserLoader, tokens *auth.TokenService, sessions auth.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
	}
}

var errBadCredentials = errors.New("bad credentials")

// Authenticate resolves the caller from a bearer token or a session cookie.
// Requests without credentials continue anonymously; requests with a bad
// token or an inactive account are rejected with 401 on every route. Store
// failures are 500.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok, err := m.resolve(c)
		switch {
		case errors.Is(err, errBadCredentials):
			Abort(c, apperror.Unauthenticated("INVALID_CREDENTIALS", "invalid or expired credentials"))
			return
		case err != nil:
			Abort(c, err)
			return
		case !ok:
			c.Next()
			return
		}

		user, err := m.users.FindByID(c.Request.Context(), userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Abort(c, apperror.Unauthenticated("INVALID_CREDENTIALS", "user not found"))
			return
		}
		if err != nil {
			Abort(c, fmt.Errorf("load user %s: %w", userID, err))
			return
		}
		if !user.IsActive {
			Abort(c, apperror.Unauthenticated("USER_INACTIVE", "user inactive or deleted"))
			return
		}

		c.Set(identityKey, access.IdentityFromUser(user))
		c.Next()
	}
}

// resolve reports whether credentials were present and, if so, whose they are.
func (m *AuthMiddleware) resolve(c *gin.Context) (uuid.UUID, bool, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
		switch strings.ToLower(scheme) {
		case "bearer", "token":
			token = strings.TrimSpace(token)
			if token == "" {
				return uuid.Nil, true, errBadCredentials
			}
			id, err := m.tokens.Parse(token)
			if err != nil {
				return uuid.Nil, true, fmt.Errorf("%w: %w", errBadCredentials, err)
			}
			return id, true, nil
		}
	}

	if m.sessions != nil {
		if key, err := c.Cookie(auth.SessionCookieName); err == nil && key != "" {
			id, err := m.sessions.Lookup(c.Request.Context(), key)
			if errors.Is(err, auth.ErrSessionNotFound) {
				// a stale cookie is treated as no cookie
				return uuid.Nil, false, nil
			}
			if err != nil {
				return uuid.Nil, true, fmt.Errorf("session lookup: %w", err)
			}
			return id, true, nil
		}
	}

	return uuid.Nil, false, nil
}

// CurrentIdentity is nil for anonymous callers.
func CurrentIdentity(c *gin.Context) *access.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*access.Identity)
	return id
}

// SetIdentity is used by handlers that authenticate inline, such as login.
func SetIdentity(c *gin.Context, id *access.Identity) {
	c.Set(identityKey, id)
}

// Require gates a route on the collection-level policy and, when cap is not
// empty, on a named capability.
func Require(policy access.Policy, op access.Operation, cap access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := access.Decide(access.Request{
			Identity:   CurrentIdentity(c),
			Operation:  op,
			Policy:     policy,
			Capability: cap,
		})
		if err != nil {
			Abort(c, err)
			return
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			Abort(c, apperror.Unauthenticated("NOT_AUTHENTICATED", "authentication credentials were not provided"))
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if id == nil {
			Abort(c, apperror.Unauthenticated("NOT_AUTHENTICATED", "authentication credentials were not provided"))
			return
		}
		if !id.IsAdmin() {
			Abort(c, apperror.Forbidden("ADMIN_REQUIRED", "admin access required"))
			return
		}
		c.Next()
	}
}

// Abort writes err as an error envelope. Errors that are not AppErrors are
// reported as 500 without leaking their text.
func Abort(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, validation.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		})
		return
	}

	status := apperror.StatusOf(appErr)
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
	}
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

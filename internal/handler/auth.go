package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"gorm.io/gorm"
)

type AuthHandler struct {
	users        repository.UserRepository
	tokens       *auth.TokenService
	sessions     auth.SessionStore
	throttle     *auth.LoginThrottle
	sessionTTL   time.Duration
	secureCookie bool
}

type AuthOptions struct {
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewAuthHandler(
	users repository.UserRepository,
	tokens *auth.TokenService,
	sessions auth.SessionStore,
	throttle *auth.LoginThrottle,
	opts AuthOptions,
) *AuthHandler {
	return &AuthHandler{
		users:        users,
		tokens:       tokens,
		sessions:     sessions,
		throttle:     throttle,
		sessionTTL:   opts.SessionTTL,
		secureCookie: opts.SecureCookie,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	a := r.Group("/auth")
	{
		a.POST("/register", h.Register)
		a.POST("/token", h.ObtainToken)
		a.POST("/login", h.Login)
		a.POST("/logout", h.Logout)
	}
}

// Register godoc
// @Summary      Register a user
// @Description  Create an account identified by email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RegisterRequest            true  "Account details"
// @Success      201      {object}  UserResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error or email taken"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.DateOfBirth != nil && req.DateOfBirth.After(time.Now()) {
		writeFieldError(c, "VALIDATION_FAILED", "date_of_birth", "notfuture", "date_of_birth cannot be in the future")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeInternalError(c, err, "REGISTER_FAILED", "failed to register user")
		return
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		DateOfBirth:  req.DateOfBirth.TimePtr(),
		IsActive:     true,
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeFieldError(c, "EMAIL_TAKEN", "email", "unique", "a user with this email already exists")
			return
		}
		writeInternalError(c, err, "REGISTER_FAILED", "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Data: toUser(user)})
}

// authenticate checks the credentials and the lockout window. It writes the
// error response itself and returns nil on failure.
func (h *AuthHandler) authenticate(c *gin.Context, req CredentialsRequest) *model.User {
	ctx := c.Request.Context()
	log := zerolog.Ctx(ctx)

	locked, remaining, err := h.throttle.Locked(ctx, req.Email)
	if err != nil {
		log.Warn().Err(err).Msg("login throttle unavailable")
	}
	if locked {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
		writeError(c, http.StatusTooManyRequests, "LOGIN_THROTTLED", "too many failed attempts, try again shortly")
		return nil
	}

	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		writeInternalError(c, err, "LOGIN_FAILED", "failed to log in")
		return nil
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		if err := h.throttle.RecordFailure(ctx, req.Email); err != nil {
			log.Warn().Err(err).Msg("failed to record login failure")
		}
		writeError(c, http.StatusBadRequest, "INVALID_CREDENTIALS", "unable to log in with provided credentials")
		return nil
	}

	if !user.IsActive {
		writeError(c, http.StatusBadRequest, "USER_INACTIVE", "user account is disabled")
		return nil
	}

	if err := h.throttle.Reset(ctx, req.Email); err != nil {
		log.Warn().Err(err).Msg("failed to reset login throttle")
	}
	if err := h.users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		log.Warn().Err(err).Msg("failed to record last login")
	}

	return user
}

// ObtainToken godoc
// @Summary      Obtain an API token
// @Description  Exchange email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      CredentialsRequest         true  "Credentials"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid credentials"
// @Failure      429      {object}  validation.ErrorResponse   "Locked out"
// @Router       /auth/token [post]
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req CredentialsRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	user := h.authenticate(c, req)
	if user == nil {
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeInternalError(c, err, "TOKEN_ISSUE_FAILED", "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// Login godoc
// @Summary      Log in
// @Description  Start a cookie session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      CredentialsRequest         true  "Credentials"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid credentials"
// @Failure      429      {object}  validation.ErrorResponse   "Locked out"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	user := h.authenticate(c, req)
	if user == nil {
		return
	}

	key, err := h.sessions.Create(c.Request.Context(), user.ID, h.sessionTTL)
	if err != nil {
		writeInternalError(c, err, "SESSION_CREATE_FAILED", "failed to start session")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, key, int(h.sessionTTL.Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, UserResponse{Data: toUser(*user)})
}

// Logout godoc
// @Summary      Log out
// @Description  End the cookie session, if any
// @Tags         auth
// @Success      204  {string}  string  "No content"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if key, err := c.Cookie(auth.SessionCookieName); err == nil && key != "" {
		if err := h.sessions.Delete(c.Request.Context(), key); err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("failed to delete session")
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", h.secureCookie, true)
	c.Status(http.StatusNoContent)
}

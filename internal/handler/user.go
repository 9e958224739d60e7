package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/storage"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"gorm.io/gorm"
)

const maxPhotoSize = 5 << 20

type UserHandler struct {
	users       repository.UserRepository
	images      storage.ImageStorage
	photoFolder string
}

func NewUserHandler(users repository.UserRepository, images storage.ImageStorage, photoFolder string) *UserHandler {
	return &UserHandler{
		users:       users,
		images:      images,
		photoFolder: photoFolder,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		me := users.Group("/me", middleware.RequireAuth())
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
		me.PUT("/photo", h.UploadPhoto)

		users.POST("/:id/permissions", middleware.RequireAdmin(), h.GrantPermission)
	}
}

func (h *UserHandler) current(c *gin.Context) (*model.User, bool) {
	id := middleware.CurrentIdentity(c)

	user, err := h.users.FindByID(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
			return nil, false
		}
		writeInternalError(c, err, "USER_FETCH_FAILED", "failed to fetch user")
		return nil, false
	}
	return user, true
}

// GetMe godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  validation.ErrorResponse   "Not authenticated"
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := h.current(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: toUser(*user)})
}

// UpdateMe godoc
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      UpdateProfileRequest       true  "Fields to update"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := h.current(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.DateOfBirth != nil {
		if req.DateOfBirth.After(time.Now()) {
			writeFieldError(c, "VALIDATION_FAILED", "date_of_birth", "notfuture", "date_of_birth cannot be in the future")
			return
		}
		user.DateOfBirth = req.DateOfBirth.TimePtr()
	}

	if err := h.users.UpdateProfile(c.Request.Context(), user); err != nil {
		writeInternalError(c, err, "USER_UPDATE_FAILED", "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: toUser(*user)})
}

// UploadPhoto godoc
// @Summary      Upload profile photo
// @Description  Replace the profile photo. The previous photo is removed.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        photo  formData  file  true  "Image file, at most 5 MB"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  validation.ErrorResponse   "Missing or invalid file"
// @Failure      503  {object}  validation.ErrorResponse   "Image storage not configured"
// @Router       /users/me/photo [put]
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	if h.images == nil {
		writeError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "image storage is not configured")
		return
	}

	user, ok := h.current(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		writeFieldError(c, "PHOTO_REQUIRED", "photo", "required", "photo file is required")
		return
	}
	if fh.Size > maxPhotoSize {
		writeFieldError(c, "PHOTO_TOO_LARGE", "photo", "max", "photo must be at most 5 MB")
		return
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		writeFieldError(c, "PHOTO_INVALID", "photo", "image", "photo must be an image")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeFieldError(c, "PHOTO_INVALID", "photo", "image", "photo could not be read")
		return
	}
	defer f.Close()

	ctx := c.Request.Context()

	url, err := h.images.UploadImage(ctx, f, h.photoFolder, fh.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			writeError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "image storage is not configured")
			return
		}
		writeInternalError(c, err, "PHOTO_UPLOAD_FAILED", "failed to upload photo")
		return
	}

	previous := user.ProfilePhoto
	user.ProfilePhoto = &url

	if err := h.users.UpdateProfile(ctx, user); err != nil {
		writeInternalError(c, err, "USER_UPDATE_FAILED", "failed to update profile")
		return
	}

	if previous != nil && *previous != "" {
		if err := h.images.DeleteImage(ctx, *previous); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("url", *previous).Msg("failed to delete previous photo")
		}
	}

	c.JSON(http.StatusOK, UserResponse{Data: toUser(*user)})
}

// GrantPermission godoc
// @Summary      Grant a permission
// @Description  Give a user a capability directly, outside of any group. Admin only.
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id       path      string                  true  "User ID (UUID)"
// @Param        payload  body      GrantPermissionRequest  true  "Permission codename"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Unknown permission"
// @Failure      403  {object}  validation.ErrorResponse   "Not an admin"
// @Failure      404  {object}  validation.ErrorResponse   "User not found"
// @Router       /users/{id}/permissions [post]
func (h *UserHandler) GrantPermission(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "INVALID_USER_ID", "invalid user id")
	if !ok {
		return
	}

	var req GrantPermissionRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}
	if !access.IsCapability(req.Codename) {
		writeFieldError(c, "UNKNOWN_PERMISSION", "codename", "oneof", "unknown permission "+req.Codename)
		return
	}

	if err := h.users.AddPermission(c.Request.Context(), userID, req.Codename); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
			return
		}
		writeInternalError(c, err, "PERMISSION_GRANT_FAILED", "failed to grant permission")
		return
	}

	c.Status(http.StatusNoContent)
}

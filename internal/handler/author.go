package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"gorm.io/gorm"
)

const (
	authorPageSize    = 20
	authorMaxPageSize = 50
)

type AuthorHandler struct {
	repo repository.AuthorRepository
}

func NewAuthorHandler(repo repository.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{repo: repo}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	allow := func(op access.Operation) gin.HandlerFunc {
		return middleware.Require(access.AuthorPolicy, op, "")
	}

	authors := r.Group("/authors")
	{
		authors.POST("", allow(access.Create), h.CreateAuthor)
		authors.GET("", allow(access.Read), h.ListAuthors)
		authors.GET("/:id", allow(access.Read), h.GetAuthorByID)
		authors.PUT("/:id", allow(access.Update), h.ReplaceAuthor)
		authors.PATCH("/:id", allow(access.Update), h.UpdateAuthor)
		authors.DELETE("/:id", allow(access.Delete), h.DeleteAuthor)
	}
}

func writeAuthorSaveError(c *gin.Context, err error, code, message string) {
	switch {
	case writeModelError(c, err):
	case errors.Is(err, repository.ErrDuplicate):
		writeFieldError(c, "AUTHOR_EXISTS", "name", "unique", "an author with this name already exists")
	default:
		writeInternalError(c, err, code, message)
	}
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Create a new author. The name is trimmed and title-cased.
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreateAuthorRequest        true  "Author to create"
// @Success      201      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author := model.Author{Name: req.Name}

	if err := h.repo.Create(c.Request.Context(), &author); err != nil {
		writeAuthorSaveError(c, err, "AUTHOR_CREATE_FAILED", "failed to create author")
		return
	}

	c.JSON(http.StatusCreated, AuthorResponse{Data: toAuthor(author)})
}

// ListAuthors godoc
// @Summary      List authors
// @Description  List authors with their book counts
// @Tags         authors
// @Produce      json
// @Param        name       query     string  false  "Name contains (case-insensitive)"
// @Param        search     query     string  false  "Name or any book title contains"
// @Param        ordering   query     string  false  "name, created_at, updated_at or book_count, prefix - for descending"
// @Param        page       query     int     false  "Page number"    default(1) minimum(1)
// @Param        page_size  query     int     false  "Items per page" default(20) minimum(1) maximum(50)
// @Success      200  {object}  ListAuthorsResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	v := c.Request.URL.Query()
	params := repository.AuthorListParams{
		Filter: query.ParseAuthorFilter(v),
		Page:   query.ParsePage(v, authorPageSize, authorMaxPageSize),
	}

	result, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		writeInternalError(c, err, "AUTHOR_LIST_FAILED", "failed to fetch authors")
		return
	}

	c.JSON(http.StatusOK, toListAuthorsResponse(result.Authors, params.Page, result.Total))
}

// GetAuthorByID godoc
// @Summary      Get an author
// @Description  Get a single author with their books in title order
// @Tags         authors
// @Produce      json
// @Param        id   path      string  true  "Author ID (UUID)"
// @Success      200  {object}  AuthorResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Author not found"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	author, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

func (h *AuthorHandler) load(c *gin.Context) (*model.Author, bool) {
	authorID, ok := parseIDParam(c, "id", "INVALID_AUTHOR_ID", "invalid author id")
	if !ok {
		return nil, false
	}

	author, err := h.repo.FindByID(c.Request.Context(), authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
			return nil, false
		}
		writeInternalError(c, err, "AUTHOR_FETCH_FAILED", "failed to fetch author")
		return nil, false
	}

	return author, true
}

// ReplaceAuthor godoc
// @Summary      Replace an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Author ID (UUID)"
// @Param        payload  body      CreateAuthorRequest  true  "Author fields"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Author not found"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) ReplaceAuthor(c *gin.Context) {
	author, ok := h.load(c)
	if !ok {
		return
	}

	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author.Name = req.Name
	h.save(c, author)
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Author ID (UUID)"
// @Param        payload  body      UpdateAuthorRequest  true  "Fields to update"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Author not found"
// @Router       /authors/{id} [patch]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	author, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Name == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	author.Name = *req.Name
	h.save(c, author)
}

func (h *AuthorHandler) save(c *gin.Context, author *model.Author) {
	if err := h.repo.Update(c.Request.Context(), author); err != nil {
		writeAuthorSaveError(c, err, "AUTHOR_UPDATE_FAILED", "failed to update author")
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Authors that still have books cannot be deleted. Requires an admin.
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Author ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID or author has books"
// @Failure      403  {object}  validation.ErrorResponse   "Not an admin"
// @Failure      404  {object}  validation.ErrorResponse   "Author not found"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "id", "INVALID_AUTHOR_ID", "invalid author id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	n, err := h.repo.CountBooks(ctx, authorID)
	if err != nil {
		writeInternalError(c, err, "AUTHOR_DELETE_FAILED", "failed to delete author")
		return
	}
	if n > 0 {
		writeError(c, http.StatusBadRequest, "AUTHOR_HAS_BOOKS", "cannot delete an author who still has books")
		return
	}

	if err := h.repo.Delete(ctx, authorID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
		case errors.Is(err, repository.ErrForeignKey):
			writeError(c, http.StatusBadRequest, "AUTHOR_HAS_BOOKS", "cannot delete an author who still has books")
		default:
			writeInternalError(c, err, "AUTHOR_DELETE_FAILED", "failed to delete author")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

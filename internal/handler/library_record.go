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
	libraryPageSize    = 20
	libraryMaxPageSize = 50
)

// LibraryHandler serves library records: a name, the shelved books and one
// librarian.
type LibraryHandler struct {
	repo repository.LibraryRepository
}

func NewLibraryHandler(repo repository.LibraryRepository) *LibraryHandler {
	return &LibraryHandler{repo: repo}
}

func (h *LibraryHandler) RegisterRoutes(r *gin.RouterGroup) {
	allow := func(op access.Operation) gin.HandlerFunc {
		return middleware.Require(access.LibrariesPolicy, op, "")
	}

	libraries := r.Group("/libraries")
	{
		libraries.GET("", allow(access.Read), h.ListLibraries)
		libraries.POST("", allow(access.Create), h.CreateLibrary)
		libraries.GET("/:id", allow(access.Read), h.GetLibraryByID)
		libraries.PATCH("/:id", allow(access.Update), h.UpdateLibrary)
		libraries.DELETE("/:id", allow(access.Delete), h.DeleteLibrary)
		libraries.PUT("/:id/books/:book_id", allow(access.Update), h.AddBook)
		libraries.DELETE("/:id/books/:book_id", allow(access.Update), h.RemoveBook)
		libraries.PUT("/:id/librarian", allow(access.Update), h.SetLibrarian)
		libraries.DELETE("/:id/librarian", allow(access.Update), h.RemoveLibrarian)
	}
}

func writeLibrarySaveError(c *gin.Context, err error, code, message string) {
	switch {
	case writeModelError(c, err):
	case errors.Is(err, repository.ErrDuplicate):
		writeFieldError(c, "LIBRARY_EXISTS", "name", "unique", "a library with this name already exists")
	case errors.Is(err, repository.ErrForeignKey):
		writeFieldError(c, "BOOK_NOT_FOUND", "book_ids", "exists", "book does not exist")
	default:
		writeInternalError(c, err, code, message)
	}
}

// CreateLibrary godoc
// @Summary      Create a library
// @Description  Create a library, optionally with a librarian and an initial shelf of books
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreateLibraryRequest       true  "Library to create"
// @Success      201      {object}  LibraryResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error, duplicate name or unknown book"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Router       /libraries [post]
func (h *LibraryHandler) CreateLibrary(c *gin.Context) {
	var req CreateLibraryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	library := model.Library{Name: req.Name}
	if req.Librarian != "" {
		library.Librarian = &model.Librarian{Name: req.Librarian}
	}

	ctx := c.Request.Context()
	if err := h.repo.Create(ctx, &library, req.BookIDs); err != nil {
		writeLibrarySaveError(c, err, "LIBRARY_CREATE_FAILED", "failed to create library")
		return
	}

	created, err := h.repo.FindByID(ctx, library.ID)
	if err != nil {
		writeInternalError(c, err, "LIBRARY_FETCH_FAILED", "failed to fetch library")
		return
	}

	c.JSON(http.StatusCreated, LibraryResponse{Data: toLibrary(*created)})
}

// ListLibraries godoc
// @Summary      List libraries
// @Description  List libraries with the number of books on their shelves
// @Tags         libraries
// @Produce      json
// @Param        name       query     string  false  "Name contains (case-insensitive)"
// @Param        book       query     string  false  "Holds a book whose title contains this"
// @Param        ordering   query     string  false  "name, created_at, updated_at or book_count, prefix - for descending"
// @Param        page       query     int     false  "Page number"    default(1) minimum(1)
// @Param        page_size  query     int     false  "Items per page" default(20) minimum(1) maximum(50)
// @Success      200  {object}  ListLibrariesResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /libraries [get]
func (h *LibraryHandler) ListLibraries(c *gin.Context) {
	v := c.Request.URL.Query()
	params := repository.LibraryListParams{
		Filter: query.ParseLibraryFilter(v),
		Page:   query.ParsePage(v, libraryPageSize, libraryMaxPageSize),
	}

	result, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		writeInternalError(c, err, "LIBRARY_LIST_FAILED", "failed to fetch libraries")
		return
	}

	c.JSON(http.StatusOK, toListLibrariesResponse(result.Libraries, params.Page, result.Total))
}

// GetLibraryByID godoc
// @Summary      Get a library
// @Description  Get a library with its librarian and its books in title order
// @Tags         libraries
// @Produce      json
// @Param        id   path      string  true  "Library ID (UUID)"
// @Success      200  {object}  LibraryResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Library not found"
// @Router       /libraries/{id} [get]
func (h *LibraryHandler) GetLibraryByID(c *gin.Context) {
	library, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, LibraryResponse{Data: toLibrary(*library)})
}

func (h *LibraryHandler) load(c *gin.Context) (*model.Library, bool) {
	libraryID, ok := parseIDParam(c, "id", "INVALID_LIBRARY_ID", "invalid library id")
	if !ok {
		return nil, false
	}

	library, err := h.repo.FindByID(c.Request.Context(), libraryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "LIBRARY_NOT_FOUND", "library not found")
			return nil, false
		}
		writeInternalError(c, err, "LIBRARY_FETCH_FAILED", "failed to fetch library")
		return nil, false
	}

	return library, true
}

// reload answers with the current state of the library after a change.
func (h *LibraryHandler) reload(c *gin.Context, library *model.Library) {
	fresh, err := h.repo.FindByID(c.Request.Context(), library.ID)
	if err != nil {
		writeInternalError(c, err, "LIBRARY_FETCH_FAILED", "failed to fetch library")
		return
	}
	c.JSON(http.StatusOK, LibraryResponse{Data: toLibrary(*fresh)})
}

// UpdateLibrary godoc
// @Summary      Rename a library
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Library ID (UUID)"
// @Param        payload  body      UpdateLibraryRequest  true  "Fields to update"
// @Success      200      {object}  LibraryResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Library not found"
// @Router       /libraries/{id} [patch]
func (h *LibraryHandler) UpdateLibrary(c *gin.Context) {
	library, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateLibraryRequest
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

	library.Name = *req.Name
	if err := h.repo.Update(c.Request.Context(), library); err != nil {
		writeLibrarySaveError(c, err, "LIBRARY_UPDATE_FAILED", "failed to update library")
		return
	}

	c.JSON(http.StatusOK, LibraryResponse{Data: toLibrary(*library)})
}

// DeleteLibrary godoc
// @Summary      Delete a library
// @Description  Removes the library and its librarian. Shelved books are kept. Requires an admin.
// @Tags         libraries
// @Security     BearerAuth
// @Param        id   path      string  true  "Library ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      403  {object}  validation.ErrorResponse   "Not an admin"
// @Failure      404  {object}  validation.ErrorResponse   "Library not found"
// @Router       /libraries/{id} [delete]
func (h *LibraryHandler) DeleteLibrary(c *gin.Context) {
	libraryID, ok := parseIDParam(c, "id", "INVALID_LIBRARY_ID", "invalid library id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), libraryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "LIBRARY_NOT_FOUND", "library not found")
			return
		}
		writeInternalError(c, err, "LIBRARY_DELETE_FAILED", "failed to delete library")
		return
	}

	c.Status(http.StatusNoContent)
}

// AddBook godoc
// @Summary      Shelve a book in a library
// @Description  Adding a book that is already shelved is a no-op
// @Tags         libraries
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Library ID (UUID)"
// @Param        book_id  path      string  true  "Book ID (UUID)"
// @Success      200      {object}  LibraryResponse
// @Failure      404      {object}  validation.ErrorResponse   "Library or book not found"
// @Router       /libraries/{id}/books/{book_id} [put]
func (h *LibraryHandler) AddBook(c *gin.Context) {
	library, ok := h.load(c)
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id", "INVALID_BOOK_ID", "invalid book id")
	if !ok {
		return
	}

	if err := h.repo.AddBook(c.Request.Context(), library.ID, bookID); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		writeInternalError(c, err, "LIBRARY_UPDATE_FAILED", "failed to shelve book")
		return
	}

	h.reload(c, library)
}

// RemoveBook godoc
// @Summary      Take a book off a library's shelf
// @Tags         libraries
// @Security     BearerAuth
// @Param        id       path      string  true  "Library ID (UUID)"
// @Param        book_id  path      string  true  "Book ID (UUID)"
// @Success      204      {string}  string  "No content"
// @Failure      404      {object}  validation.ErrorResponse   "Library not found or book not shelved"
// @Router       /libraries/{id}/books/{book_id} [delete]
func (h *LibraryHandler) RemoveBook(c *gin.Context) {
	library, ok := h.load(c)
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id", "INVALID_BOOK_ID", "invalid book id")
	if !ok {
		return
	}

	if err := h.repo.RemoveBook(c.Request.Context(), library.ID, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_SHELVED", "book is not in this library")
			return
		}
		writeInternalError(c, err, "LIBRARY_UPDATE_FAILED", "failed to remove book")
		return
	}

	c.Status(http.StatusNoContent)
}

// SetLibrarian godoc
// @Summary      Assign the librarian
// @Description  A library has at most one librarian; assigning again renames it
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string            true  "Library ID (UUID)"
// @Param        payload  body      LibrarianRequest  true  "Librarian"
// @Success      200      {object}  LibrarianResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      404      {object}  validation.ErrorResponse   "Library not found"
// @Router       /libraries/{id}/librarian [put]
func (h *LibraryHandler) SetLibrarian(c *gin.Context) {
	library, ok := h.load(c)
	if !ok {
		return
	}

	var req LibrarianRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	librarian, err := h.repo.SetLibrarian(c.Request.Context(), library.ID, req.Name)
	if err != nil {
		if writeModelError(c, err) {
			return
		}
		writeInternalError(c, err, "LIBRARIAN_UPDATE_FAILED", "failed to assign librarian")
		return
	}

	c.JSON(http.StatusOK, LibrarianResponse{Data: *toLibrarian(librarian)})
}

// RemoveLibrarian godoc
// @Summary      Remove the librarian
// @Tags         libraries
// @Security     BearerAuth
// @Param        id   path      string  true  "Library ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "Library not found or has no librarian"
// @Router       /libraries/{id}/librarian [delete]
func (h *LibraryHandler) RemoveLibrarian(c *gin.Context) {
	libraryID, ok := parseIDParam(c, "id", "INVALID_LIBRARY_ID", "invalid library id")
	if !ok {
		return
	}

	if err := h.repo.RemoveLibrarian(c.Request.Context(), libraryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "LIBRARIAN_NOT_FOUND", "library has no librarian")
			return
		}
		writeInternalError(c, err, "LIBRARIAN_DELETE_FAILED", "failed to remove librarian")
		return
	}

	c.Status(http.StatusNoContent)
}

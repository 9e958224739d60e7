package handler

import (
	"errors"
	"net/http"
	"strings"

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
	bookPageSize    = 10
	bookMaxPageSize = 100
)

type BookHandler struct {
	repo repository.BookRepository
}

func NewBookHandler(repo repository.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	allow := func(op access.Operation) gin.HandlerFunc {
		return middleware.Require(access.BookPolicy, op, "")
	}

	books := r.Group("/books")
	{
		books.GET("", allow(access.Read), h.ListBooks)
		books.GET("/search", allow(access.Read), h.SearchBooks)
		books.GET("/recent", allow(access.Read), h.RecentBooks)
		books.GET("/lookup", allow(access.Read), h.LookupBook)
		books.GET("/:id", allow(access.Read), h.GetBookByID)
		books.POST("", allow(access.Create), h.CreateBook)
		books.PUT("/:id", allow(access.Update), h.ReplaceBook)
		books.PATCH("/:id", allow(access.Update), h.UpdateBook)
		books.DELETE("/:id", allow(access.Delete), h.DeleteBook)
	}
}

// writeBookSaveError maps create and update failures.
func writeBookSaveError(c *gin.Context, err error, code, message string) {
	switch {
	case writeModelError(c, err):
	case errors.Is(err, repository.ErrForeignKey):
		writeFieldError(c, "AUTHOR_NOT_FOUND", "author_id", "exists", "author does not exist")
	case errors.Is(err, repository.ErrDuplicate):
		writeFieldError(c, "BOOK_EXISTS", "title", "unique", "a book with this title by this author already exists")
	default:
		writeInternalError(c, err, code, message)
	}
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a new book. The publication year cannot be in the future.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title:           req.Title,
		AuthorID:        req.AuthorID,
		PublicationYear: req.PublicationYear,
		ISBN:            strings.TrimSpace(req.ISBN),
	}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &book); err != nil {
		writeBookSaveError(c, err, "BOOK_CREATE_FAILED", "failed to create book")
		return
	}

	created, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		writeInternalError(c, err, "BOOK_FETCH_FAILED", "failed to fetch created book")
		return
	}

	c.JSON(http.StatusCreated, BookResponse{Data: toBook(*created)})
}

// ListBooks godoc
// @Summary      List books
// @Description  List books with optional filters. Malformed filter values are ignored.
// @Tags         books
// @Produce      json
// @Param        page                  query     int     false  "Page number"      default(1) minimum(1)
// @Param        page_size             query     int     false  "Items per page"   default(10) minimum(1) maximum(100)
// @Param        author                query     string  false  "Author ID (UUID)"
// @Param        library               query     string  false  "Library ID (UUID), books shelved in that library"
// @Param        title                 query     string  false  "Title contains (case-insensitive)"
// @Param        author_name           query     string  false  "Author name contains (case-insensitive)"
// @Param        publication_year_min  query     int     false  "Earliest publication year"
// @Param        publication_year_max  query     int     false  "Latest publication year"
// @Param        publication_years     query     string  false  "Comma separated list of years" example(1949,1997)
// @Param        recent                query     bool    false  "Published within the last 10 years"
// @Param        decade                query     int     false  "Decade start, e.g. 1990"
// @Param        century               query     int     false  "Century number, e.g. 20"
// @Param        search                query     string  false  "Search title or author name"
// @Param        ordering              query     string  false  "Comma separated keys, prefix - for descending" example(-publication_year,title)
// @Success      200  {object}  ListBooksResponse
// @Failure      401  {object}  validation.ErrorResponse   "Invalid credentials"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	h.list(c, query.ParseBookFilter(c.Request.URL.Query()))
}

// SearchBooks godoc
// @Summary      Search books
// @Description  Search by free text, author name and year range
// @Tags         books
// @Produce      json
// @Param        q         query     string  false  "Title or author name contains"
// @Param        author    query     string  false  "Author name contains"
// @Param        year_min  query     int     false  "Earliest publication year"
// @Param        year_max  query     int     false  "Latest publication year"
// @Param        ordering  query     string  false  "Comma separated ordering keys"
// @Param        page      query     int     false  "Page number"    default(1)
// @Param        page_size query     int     false  "Items per page" default(10)
// @Success      200  {object}  ListBooksResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	h.list(c, query.ParseSearchFilter(c.Request.URL.Query()))
}

// RecentBooks godoc
// @Summary      Recent books
// @Description  Books published within the last N years, newest first
// @Tags         books
// @Produce      json
// @Param        years     query     int     false  "Window in years" default(20)
// @Param        page      query     int     false  "Page number"     default(1)
// @Param        page_size query     int     false  "Items per page"  default(10)
// @Success      200  {object}  ListBooksResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/recent [get]
func (h *BookHandler) RecentBooks(c *gin.Context) {
	h.list(c, query.ParseRecentFilter(c.Request.URL.Query()))
}

func (h *BookHandler) list(c *gin.Context, filter query.BookFilter) {
	params := repository.BookListParams{
		Filter: filter,
		Page:   query.ParsePage(c.Request.URL.Query(), bookPageSize, bookMaxPageSize),
	}

	result, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		writeInternalError(c, err, "BOOK_LIST_FAILED", "failed to fetch books")
		return
	}

	c.JSON(http.StatusOK, toListBooksResponse(result.Books, params.Page, result.Total))
}

// LookupBook godoc
// @Summary      Find a book by title
// @Description  Exact title match. When several authors share a title the oldest record is returned.
// @Tags         books
// @Produce      json
// @Param        title  query     string  true  "Exact title"
// @Success      200  {object}  BookResponse
// @Failure      400  {object}  validation.ErrorResponse   "Missing title"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Router       /books/lookup [get]
func (h *BookHandler) LookupBook(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		writeFieldError(c, "TITLE_REQUIRED", "title", "required", "title is required")
		return
	}

	book, err := h.repo.FindByTitle(c.Request.Context(), title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		writeInternalError(c, err, "BOOK_FETCH_FAILED", "failed to fetch book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Description  Get a single book with its author expanded
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  BookResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	book, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

func (h *BookHandler) load(c *gin.Context) (*model.Book, bool) {
	bookID, ok := parseIDParam(c, "id", "INVALID_BOOK_ID", "invalid book id")
	if !ok {
		return nil, false
	}

	book, err := h.repo.FindByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return nil, false
		}
		writeInternalError(c, err, "BOOK_FETCH_FAILED", "failed to fetch book")
		return nil, false
	}

	return book, true
}

// ReplaceBook godoc
// @Summary      Replace a book
// @Description  Full update; title, author_id and publication_year are required
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Book ID (UUID)"
// @Param        payload  body      ReplaceBookRequest  true  "Book fields"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Router       /books/{id} [put]
func (h *BookHandler) ReplaceBook(c *gin.Context) {
	book, ok := h.load(c)
	if !ok {
		return
	}

	var req ReplaceBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book.Title = req.Title
	book.AuthorID = req.AuthorID
	book.PublicationYear = req.PublicationYear
	book.ISBN = strings.TrimSpace(req.ISBN)

	h.save(c, book)
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partial update; only supplied fields are validated and written
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Book ID (UUID)"
// @Param        payload  body      UpdateBookRequest   true  "Fields to update"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	book, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Title == nil && req.AuthorID == nil &&
		req.PublicationYear == nil && req.ISBN == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.AuthorID != nil {
		book.AuthorID = *req.AuthorID
	}
	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
	}
	if req.ISBN != nil {
		book.ISBN = strings.TrimSpace(*req.ISBN)
	}

	h.save(c, book)
}

func (h *BookHandler) save(c *gin.Context, book *model.Book) {
	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, book); err != nil {
		writeBookSaveError(c, err, "BOOK_UPDATE_FAILED", "failed to update book")
		return
	}

	updated, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		writeInternalError(c, err, "BOOK_FETCH_FAILED", "failed to fetch updated book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*updated)})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book by its UUID. Requires an admin.
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      401  {object}  validation.ErrorResponse   "Not authenticated"
// @Failure      403  {object}  validation.ErrorResponse   "Not an admin"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id", "INVALID_BOOK_ID", "invalid book id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		writeInternalError(c, err, "BOOK_DELETE_FAILED", "failed to delete book")
		return
	}

	c.Status(http.StatusNoContent)
}

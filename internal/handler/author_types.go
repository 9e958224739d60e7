package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
)

type CreateAuthorRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateAuthorRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

type AuthorBook struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	ISBN            string    `json:"isbn"`
}

// Author is the detail representation with nested books.
type Author struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Books     []AuthorBook `json:"books"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type AuthorResponse struct {
	Data Author `json:"data"`
}

type AuthorListItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BookCount int64     `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
}

type ListAuthorsResponse struct {
	Data       []AuthorListItem `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

func toAuthor(a model.Author) Author {
	books := make([]AuthorBook, 0, len(a.Books))
	for _, b := range a.Books {
		books = append(books, AuthorBook{
			ID:              b.ID,
			Title:           b.Title,
			PublicationYear: b.PublicationYear,
			ISBN:            b.ISBN,
		})
	}

	return Author{
		ID:        a.ID,
		Name:      a.Name,
		Books:     books,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toListAuthorsResponse(authors []model.AuthorWithCount, page query.Page, total int64) ListAuthorsResponse {
	items := make([]AuthorListItem, 0, len(authors))
	for _, a := range authors {
		items = append(items, AuthorListItem{
			ID:        a.ID,
			Name:      a.Name,
			BookCount: a.BookCount,
			CreatedAt: a.CreatedAt,
		})
	}

	return ListAuthorsResponse{
		Data:       items,
		Pagination: toPagination(page, total),
	}
}

package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
)

type CreateLibraryRequest struct {
	Name      string      `json:"name" binding:"required,min=1,max=200"`
	Librarian string      `json:"librarian" binding:"omitempty,max=150"`
	BookIDs   []uuid.UUID `json:"book_ids" swaggertype:"array,string"`
}

type UpdateLibraryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
}

type LibrarianRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
}

type Librarian struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LibrarianResponse struct {
	Data Librarian `json:"data"`
}

// Library is the detail representation: the librarian, or null, and the
// shelved books in title order.
type Library struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Librarian *Librarian     `json:"librarian"`
	Books     []BookListItem `json:"books"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type LibraryResponse struct {
	Data Library `json:"data"`
}

type LibraryListItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BookCount int64     `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
}

type ListLibrariesResponse struct {
	Data       []LibraryListItem `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

func toLibrarian(l *model.Librarian) *Librarian {
	if l == nil {
		return nil
	}
	return &Librarian{ID: l.ID, Name: l.Name, UpdatedAt: l.UpdatedAt}
}

func toLibrary(l model.Library) Library {
	books := make([]BookListItem, 0, len(l.Books))
	for _, b := range l.Books {
		books = append(books, toBookListItem(b))
	}

	return Library{
		ID:        l.ID,
		Name:      l.Name,
		Librarian: toLibrarian(l.Librarian),
		Books:     books,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toListLibrariesResponse(libraries []model.LibraryWithCount, page query.Page, total int64) ListLibrariesResponse {
	items := make([]LibraryListItem, 0, len(libraries))
	for _, l := range libraries {
		items = append(items, LibraryListItem{
			ID:        l.ID,
			Name:      l.Name,
			BookCount: l.BookCount,
			CreatedAt: l.CreatedAt,
		})
	}

	return ListLibrariesResponse{
		Data:       items,
		Pagination: toPagination(page, total),
	}
}

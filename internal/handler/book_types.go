package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
)

type CreateBookRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	AuthorID        uuid.UUID `json:"author_id" binding:"required" swaggertype:"string" example:"0b6f1c9e-2d7a-4c4e-9a39-8f0f2b7d5e11"`
	PublicationYear int       `json:"publication_year" binding:"required,min=1000,notfuture" example:"1949"`
	ISBN            string    `json:"isbn" binding:"omitempty,max=13"`
}

// ReplaceBookRequest is the PUT body; every field is required.
type ReplaceBookRequest = CreateBookRequest

type UpdateBookRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=200"`
	AuthorID        *uuid.UUID `json:"author_id" swaggertype:"string"`
	PublicationYear *int       `json:"publication_year" binding:"omitempty,min=1000,notfuture"`
	ISBN            *string    `json:"isbn" binding:"omitempty,max=13"`
}

type AuthorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Book is the detail representation with the author expanded.
type Book struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Author          AuthorSummary `json:"author"`
	PublicationYear int           `json:"publication_year"`
	ISBN            string        `json:"isbn"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type BookResponse struct {
	Data Book `json:"data"`
}

// BookListItem carries the author as an id plus its read-only name.
type BookListItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          uuid.UUID `json:"author"`
	AuthorName      string    `json:"author_name"`
	PublicationYear int       `json:"publication_year"`
	ISBN            string    `json:"isbn"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Pagination struct {
	Page       int   `json:"page" binding:"omitempty,min=1"`
	PageSize   int   `json:"page_size" binding:"omitempty,min=1"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type ListBooksResponse struct {
	Data       []BookListItem `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

func toPagination(p query.Page, total int64) Pagination {
	return Pagination{
		Page:       p.Number,
		PageSize:   p.Size,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
}

func toBook(b model.Book) Book {
	return Book{
		ID:    b.ID,
		Title: b.Title,
		Author: AuthorSummary{
			ID:   b.Author.ID,
			Name: b.Author.Name,
		},
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBookListItem(b model.Book) BookListItem {
	return BookListItem{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.AuthorID,
		AuthorName:      b.Author.Name,
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toListBooksResponse(books []model.Book, page query.Page, total int64) ListBooksResponse {
	items := make([]BookListItem, 0, len(books))
	for _, b := range books {
		items = append(items, toBookListItem(b))
	}

	return ListBooksResponse{
		Data:       items,
		Pagination: toPagination(page, total),
	}
}

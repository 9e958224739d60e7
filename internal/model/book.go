package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MinPublicationYear = 1000

type Book struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title           string    `gorm:"size:200;not null;uniqueIndex:idx_books_title_author"`
	TitleKey        string    `gorm:"size:400;not null;default:'';index"`
	AuthorID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_books_title_author"`
	Author          Author
	PublicationYear int    `gorm:"not null;index"`
	ISBN            string `gorm:"column:isbn;size:13"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BeforeSave enforces the title and publication year invariants on every
// insert and update that carries the full record.
func (b *Book) BeforeSave(tx *gorm.DB) error {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" {
		return &ValidationError{Field: "title", Message: "book title cannot be empty"}
	}
	b.TitleKey = SearchKey(b.Title)

	current := time.Now().Year()
	if b.PublicationYear > current {
		return &ValidationError{
			Field:   "publication_year",
			Message: fmt.Sprintf("publication year cannot be in the future; current year is %d", current),
		}
	}
	if b.PublicationYear < MinPublicationYear {
		return &ValidationError{Field: "publication_year", Message: "publication year must be after 1000 AD"}
	}
	return nil
}

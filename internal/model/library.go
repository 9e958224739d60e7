package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Library is a named collection of books. A book may sit in any number of
// libraries; each library has at most one librarian.
type Library struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"size:200;not null;uniqueIndex"`
	NameKey   string     `gorm:"size:400;not null;default:'';index"`
	Books     []Book     `gorm:"many2many:library_books;constraint:OnDelete:CASCADE"`
	Librarian *Librarian `gorm:"foreignKey:LibraryID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Library) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

func (l *Library) BeforeSave(tx *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return &ValidationError{Field: "name", Message: "library name cannot be empty"}
	}
	l.NameKey = SearchKey(l.Name)
	return nil
}

type Librarian struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:150;not null"`
	LibraryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Librarian) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

func (l *Librarian) BeforeSave(tx *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return &ValidationError{Field: "librarian", Message: "librarian name cannot be empty"}
	}
	return nil
}

// LibraryWithCount is the list projection of a library.
type LibraryWithCount struct {
	Library
	BookCount int64
}

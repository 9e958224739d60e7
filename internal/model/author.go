package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type Author struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex"`
	NameKey   string    `gorm:"size:200;not null;default:'';index"`
	Books     []Book    `json:"books,omitempty" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Author) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// NormalizeAuthorName trims and title-cases a display name.
func NormalizeAuthorName(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

func (a *Author) BeforeSave(tx *gorm.DB) error {
	a.Name = NormalizeAuthorName(a.Name)
	if a.Name == "" {
		return &ValidationError{Field: "name", Message: "author name cannot be empty"}
	}
	a.NameKey = SearchKey(a.Name)
	return nil
}

// AuthorWithCount is the list projection of an author.
type AuthorWithCount struct {
	Author
	BookCount int64
}

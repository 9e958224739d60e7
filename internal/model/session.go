package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Key       string    `gorm:"column:session_key;size:64;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Permission{},
		&Group{},
		&User{},
		&Author{},
		&Book{},
		&Library{},
		&Librarian{},
		&Post{},
		&Comment{},
		&Session{},
	}
}

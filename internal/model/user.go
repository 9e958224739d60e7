package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is identified by email; there is no username.
type User struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Email        string       `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string       `gorm:"size:255;not null"`
	FirstName    string       `gorm:"size:150"`
	LastName     string       `gorm:"size:150"`
	DateOfBirth  *time.Time   `gorm:"type:date"`
	ProfilePhoto *string      `gorm:"type:text"`
	IsActive     bool         `gorm:"not null"`
	IsStaff      bool         `gorm:"not null"`
	IsSuperuser  bool         `gorm:"not null"`
	Groups       []Group      `gorm:"many2many:user_groups;constraint:OnDelete:CASCADE"`
	Permissions  []Permission `gorm:"many2many:user_permissions;constraint:OnDelete:CASCADE"`
	LastLogin    *time.Time
	DateJoined   time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Group struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"size:150;not null;uniqueIndex"`
	Permissions []Permission `gorm:"many2many:group_permissions;constraint:OnDelete:CASCADE"`
}

type Permission struct {
	ID       uint   `gorm:"primaryKey"`
	Codename string `gorm:"size:100;not null;uniqueIndex"`
	Name     string `gorm:"size:255;not null"`
}

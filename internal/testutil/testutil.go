package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestJWTSecret = "test-secret"
	TestPassword  = "s3cretpass"
)

func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func SeedAuthor(t *testing.T, db *gorm.DB, name string) model.Author {
	t.Helper()

	author := model.Author{Name: name}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", name, err)
	}
	return author
}

func SeedBook(t *testing.T, db *gorm.DB, author model.Author, title string, year int) model.Book {
	t.Helper()

	book := model.Book{
		Title:           title,
		AuthorID:        author.ID,
		PublicationYear: year,
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}
	book.Author = author
	return book
}

type UserOption func(*model.User)

func Staff() UserOption {
	return func(u *model.User) { u.IsStaff = true }
}

func Superuser() UserOption {
	return func(u *model.User) {
		u.IsStaff = true
		u.IsSuperuser = true
	}
}

func Inactive() UserOption {
	return func(u *model.User) { u.IsActive = false }
}

// SeedUser creates an active user whose password is TestPassword.
func SeedUser(t *testing.T, db *gorm.DB, email string, opts ...UserOption) model.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(&user)
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}
	return user
}

// SeedGroups installs the default permissions and groups.
func SeedGroups(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := repository.NewGormGroupRepository(db).SeedDefaults(context.Background()); err != nil {
		t.Fatalf("failed to seed groups: %v", err)
	}
}

func AddToGroup(t *testing.T, db *gorm.DB, user model.User, group string) {
	t.Helper()

	if err := repository.NewGormGroupRepository(db).AddMember(context.Background(), group, user.ID); err != nil {
		t.Fatalf("failed to add %s to %s: %v", user.Email, group, err)
	}
}

// Token returns a bearer token for the user signed with TestJWTSecret.
func Token(t *testing.T, user model.User) string {
	t.Helper()

	token, _, err := auth.NewTokenService(TestJWTSecret, time.Hour).Issue(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

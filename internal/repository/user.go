package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	AddPermission(ctx context.Context, id uuid.UUID, codename string) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = model.NormalizeEmail(user.Email)
	return translate(r.db.WithContext(ctx).Omit("Groups", "Permissions").Create(user).Error)
}

func (r *GormUserRepository) withAccess(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Groups.Permissions").
		Preload("Permissions")
}

// FindByID loads the user with everything needed to compute its effective
// permissions.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.withAccess(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.withAccess(ctx).
		First(&user, "email = ?", model.NormalizeEmail(email)).Error; err != nil {

		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).
		Model(user).
		Select("first_name", "last_name", "date_of_birth", "profile_photo").
		Updates(user).Error)
}

func (r *GormUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// AddPermission grants a permission directly to the user. Both the user and
// the codename must exist.
func (r *GormUserRepository) AddPermission(ctx context.Context, id uuid.UUID, codename string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		var perm model.Permission
		if err := tx.First(&perm, "codename = ?", codename).Error; err != nil {
			return err
		}

		return tx.Model(&user).Association("Permissions").Append(&perm)
	})
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/gorm"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	SeedDefaults(ctx context.Context) error
	List(ctx context.Context) ([]model.Group, error)
	AddMember(ctx context.Context, name string, userID uuid.UUID) error
	RemoveMember(ctx context.Context, name string, userID uuid.UUID) error
	Members(ctx context.Context, name string) ([]model.User, error)
}

type GormGroupRepository struct {
	db *gorm.DB
}

func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// SeedDefaults creates the built-in permissions and groups and resets each
// group's permission set. Running it twice is harmless.
func (r *GormGroupRepository) SeedDefaults(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		perms := make(map[access.Capability]model.Permission, len(access.Capabilities))
		for _, c := range access.Capabilities {
			p := model.Permission{Codename: string(c.Codename), Name: c.Name}
			if err := tx.Where(model.Permission{Codename: p.Codename}).
				Attrs(model.Permission{Name: p.Name}).
				FirstOrCreate(&p).Error; err != nil {

				return err
			}
			perms[c.Codename] = p
		}

		for _, def := range access.DefaultGroups {
			g := model.Group{Name: def.Name}
			if err := tx.Where(model.Group{Name: def.Name}).FirstOrCreate(&g).Error; err != nil {
				return err
			}

			set := make([]model.Permission, 0, len(def.Capabilities))
			for _, c := range def.Capabilities {
				set = append(set, perms[c])
			}
			if err := tx.Model(&g).Association("Permissions").Replace(set); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *GormGroupRepository) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Preload("Permissions", func(db *gorm.DB) *gorm.DB {
			return db.Order("permissions.id ASC")
		}).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *GormGroupRepository) find(tx *gorm.DB, name string) (*model.Group, error) {
	var g model.Group
	if err := tx.First(&g, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

// AddMember returns ErrGroupNotFound or gorm.ErrRecordNotFound for a missing
// user. Adding an existing member is a no-op.
func (r *GormGroupRepository) AddMember(ctx context.Context, name string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := r.find(tx, name)
		if err != nil {
			return err
		}

		var user model.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		return tx.Model(&user).Association("Groups").Append(g)
	})
}

func (r *GormGroupRepository) RemoveMember(ctx context.Context, name string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := r.find(tx, name)
		if err != nil {
			return err
		}

		var user model.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		return tx.Model(&user).Association("Groups").Delete(g)
	})
}

func (r *GormGroupRepository) Members(ctx context.Context, name string) ([]model.User, error) {
	db := r.db.WithContext(ctx)

	g, err := r.find(db, name)
	if err != nil {
		return nil, err
	}

	var users []model.User
	err = db.
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", g.ID).
		Order("users.email ASC").
		Find(&users).Error
	return users, err
}

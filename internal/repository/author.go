package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
	"gorm.io/gorm"
)

type AuthorListParams struct {
	Filter query.AuthorFilter
	Page   query.Page
}

type AuthorListResult struct {
	Authors []model.AuthorWithCount
	Total   int64
}

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	List(ctx context.Context, params AuthorListParams) (AuthorListResult, error)
	CountBooks(ctx context.Context, id uuid.UUID) (int64, error)
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return translate(r.db.WithContext(ctx).Omit("Books").Create(author).Error)
}

// FindByID loads the author with its books in title order.
func (r *GormAuthorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("books.title ASC").Order("books.id ASC")
		}).
		First(&author, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &author, nil
}

func (r *GormAuthorRepository) List(ctx context.Context, params AuthorListParams) (AuthorListResult, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Author{}).Scopes(params.Filter.Where)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return AuthorListResult{}, err
	}

	var authors []model.AuthorWithCount
	if err := filtered().
		Select("authors.*, " + query.BookCountColumn()).
		Scopes(params.Filter.Order, params.Page.Scope).
		Scan(&authors).Error; err != nil {

		return AuthorListResult{}, err
	}

	return AuthorListResult{Authors: authors, Total: total}, nil
}

func (r *GormAuthorRepository) CountBooks(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("author_id = ?", id).
		Count(&n).Error
	return n, err
}

func (r *GormAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	return translate(r.db.WithContext(ctx).
		Model(author).
		Select("name", "name_key").
		Updates(author).Error)
}

// Delete fails with ErrForeignKey when books still reference the author.
func (r *GormAuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Author{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

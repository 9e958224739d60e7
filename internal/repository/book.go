package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
	"gorm.io/gorm"
)

type BookListParams struct {
	Filter query.BookFilter
	Page   query.Page
}

type BookListResult struct {
	Books []model.Book
	Total int64
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	List(ctx context.Context, params BookListParams) (BookListResult, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return translate(r.db.WithContext(ctx).Omit("Author").Create(book).Error)
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&book, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

// FindByTitle matches the exact title. When several authors share a title
// the oldest record wins.
func (r *GormBookRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title = ?", title).
		Order("created_at ASC").
		Order("id ASC").
		First(&book).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context, params BookListParams) (BookListResult, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Book{}).Scopes(params.Filter.Where)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return BookListResult{}, err
	}

	var books []model.Book
	if err := filtered().
		Scopes(params.Filter.Order, params.Page.Scope).
		Preload("Author").
		Find(&books).Error; err != nil {

		return BookListResult{}, err
	}

	return BookListResult{Books: books, Total: total}, nil
}

// Update writes every mutable column. Save hooks see the full record, so the
// model invariants are re-checked.
func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	return translate(r.db.WithContext(ctx).
		Model(book).
		Select("title", "title_key", "author_id", "publication_year", "isbn").
		Updates(book).Error)
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LibraryListParams struct {
	Filter query.LibraryFilter
	Page   query.Page
}

type LibraryListResult struct {
	Libraries []model.LibraryWithCount
	Total     int64
}

type LibraryRepository interface {
	// Create inserts the library with its librarian and shelves the given
	// books. A missing book fails with ErrForeignKey.
	Create(ctx context.Context, library *model.Library, bookIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Library, error)
	List(ctx context.Context, params LibraryListParams) (LibraryListResult, error)
	Update(ctx context.Context, library *model.Library) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddBook(ctx context.Context, libraryID, bookID uuid.UUID) error
	RemoveBook(ctx context.Context, libraryID, bookID uuid.UUID) error
	SetLibrarian(ctx context.Context, libraryID uuid.UUID, name string) (*model.Librarian, error)
	RemoveLibrarian(ctx context.Context, libraryID uuid.UUID) error
}

type GormLibraryRepository struct {
	db *gorm.DB
}

func NewGormLibraryRepository(db *gorm.DB) *GormLibraryRepository {
	return &GormLibraryRepository{db: db}
}

type libraryBook struct {
	LibraryID uuid.UUID
	BookID    uuid.UUID
}

func (libraryBook) TableName() string { return "library_books" }

func (r *GormLibraryRepository) Create(ctx context.Context, library *model.Library, bookIDs []uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Books").Create(library).Error; err != nil {
			return err
		}
		for _, id := range bookIDs {
			if err := shelve(tx, library.ID, id); err != nil {
				return err
			}
		}
		return nil
	}))
}

func shelve(tx *gorm.DB, libraryID, bookID uuid.UUID) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&libraryBook{LibraryID: libraryID, BookID: bookID}).Error
}

// FindByID loads the library with its librarian and its books in title order.
func (r *GormLibraryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Library, error) {
	var library model.Library
	if err := r.db.WithContext(ctx).
		Preload("Librarian").
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("books.title ASC").Order("books.id ASC")
		}).
		Preload("Books.Author").
		First(&library, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &library, nil
}

func (r *GormLibraryRepository) List(ctx context.Context, params LibraryListParams) (LibraryListResult, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Library{}).Scopes(params.Filter.Where)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return LibraryListResult{}, err
	}

	var libraries []model.LibraryWithCount
	if err := filtered().
		Select("libraries.*, " + query.LibraryBookCountColumn()).
		Scopes(params.Filter.Order, params.Page.Scope).
		Scan(&libraries).Error; err != nil {

		return LibraryListResult{}, err
	}

	return LibraryListResult{Libraries: libraries, Total: total}, nil
}

func (r *GormLibraryRepository) Update(ctx context.Context, library *model.Library) error {
	return translate(r.db.WithContext(ctx).
		Model(library).
		Select("name", "name_key").
		Updates(library).Error)
}

// Delete removes the library, its shelf entries and its librarian. Books are
// kept.
func (r *GormLibraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Library{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddBook is idempotent. A missing book fails with ErrForeignKey.
func (r *GormLibraryRepository) AddBook(ctx context.Context, libraryID, bookID uuid.UUID) error {
	return translate(shelve(r.db.WithContext(ctx), libraryID, bookID))
}

func (r *GormLibraryRepository) RemoveBook(ctx context.Context, libraryID, bookID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("library_id = ? AND book_id = ?", libraryID, bookID).
		Delete(&libraryBook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetLibrarian assigns or renames the single librarian of a library.
func (r *GormLibraryRepository) SetLibrarian(ctx context.Context, libraryID uuid.UUID, name string) (*model.Librarian, error) {
	librarian := model.Librarian{LibraryID: libraryID, Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "library_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(&librarian).Error
	if err != nil {
		return nil, translate(err)
	}

	var stored model.Librarian
	if err := r.db.WithContext(ctx).First(&stored, "library_id = ?", libraryID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormLibraryRepository) RemoveLibrarian(ctx context.Context, libraryID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Librarian{}, "library_id = ?", libraryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
	"gorm.io/gorm"
)

type PostListParams struct {
	AuthorID *uuid.UUID
	Page     query.Page
}

type PostListResult struct {
	Posts []model.Post
	Total int64
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, params PostListParams) (PostListResult, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate(r.db.WithContext(ctx).Omit("Author", "Comments").Create(post).Error)
}

func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &post, nil
}

// List returns newest posts first.
func (r *GormPostRepository) List(ctx context.Context, params PostListParams) (PostListResult, error) {
	filtered := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&model.Post{})
		if params.AuthorID != nil {
			db = db.Where("author_id = ?", *params.AuthorID)
		}
		return db
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return PostListResult{}, err
	}

	var posts []model.Post
	if err := filtered().
		Preload("Author").
		Order("created_at DESC").
		Order("id ASC").
		Scopes(params.Page.Scope).
		Find(&posts).Error; err != nil {

		return PostListResult{}, err
	}

	return PostListResult{Posts: posts, Total: total}, nil
}

func (r *GormPostRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).
		Model(post).
		Select("title", "content").
		Updates(post).Error
}

// Delete removes the post and its comments.
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Comment{}, "post_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Post{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, page query.Page) ([]model.Comment, int64, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("Author").Create(comment).Error)
}

func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &comment, nil
}

// ListByPost returns a post's comments oldest first.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, page query.Page) ([]model.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&total).Error; err != nil {

		return nil, 0, err
	}

	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Scopes(page.Scope).
		Find(&comments).Error; err != nil {

		return nil, 0, err
	}

	return comments, total, nil
}

func (r *GormCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).
		Model(comment).
		Select("content").
		Updates(comment).Error
}

func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

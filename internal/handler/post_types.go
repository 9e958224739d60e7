package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
)

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" binding:"omitempty,min=1"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

type UserSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toUserSummary(u model.User) UserSummary {
	name := u.FullName()
	if name == "" {
		name = u.Email
	}
	return UserSummary{ID: u.ID, Name: name}
}

type Post struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type PostResponse struct {
	Data Post `json:"data"`
}

type ListPostsResponse struct {
	Data       []Post     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Comment struct {
	ID        uuid.UUID   `json:"id"`
	PostID    uuid.UUID   `json:"post_id"`
	Content   string      `json:"content"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
}

type CommentResponse struct {
	Data Comment `json:"data"`
}

type ListCommentsResponse struct {
	Data       []Comment  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func toPost(p model.Post) Post {
	return Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    toUserSummary(p.Author),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toComment(c model.Comment) Comment {
	return Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Author:    toUserSummary(c.Author),
		CreatedAt: c.CreatedAt,
	}
}

func toListPostsResponse(posts []model.Post, page query.Page, total int64) ListPostsResponse {
	data := make([]Post, 0, len(posts))
	for _, p := range posts {
		data = append(data, toPost(p))
	}
	return ListPostsResponse{Data: data, Pagination: toPagination(page, total)}
}

func toListCommentsResponse(comments []model.Comment, page query.Page, total int64) ListCommentsResponse {
	data := make([]Comment, 0, len(comments))
	for _, c := range comments {
		data = append(data, toComment(c))
	}
	return ListCommentsResponse{Data: data, Pagination: toPagination(page, total)}
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/query"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/sanitize"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"gorm.io/gorm"
)

const (
	postPageSize    = 10
	postMaxPageSize = 50
)

type PostHandler struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewPostHandler(posts repository.PostRepository, comments repository.CommentRepository) *PostHandler {
	return &PostHandler{posts: posts, comments: comments}
}

func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup) {
	allow := func(op access.Operation) gin.HandlerFunc {
		return middleware.Require(access.ContentPolicy, op, "")
	}

	posts := r.Group("/library/posts")
	{
		posts.GET("", allow(access.Read), h.ListPosts)
		posts.POST("", allow(access.Create), h.CreatePost)
		posts.GET("/:id", allow(access.Read), h.GetPost)
		posts.PATCH("/:id", allow(access.Update), h.UpdatePost)
		posts.DELETE("/:id", allow(access.Delete), h.DeletePost)

		posts.GET("/:id/comments", allow(access.Read), h.ListComments)
		posts.POST("/:id/comments", allow(access.Create), h.CreateComment)
	}

	comments := r.Group("/library/comments")
	{
		comments.PATCH("/:id", allow(access.Update), h.UpdateComment)
		comments.DELETE("/:id", allow(access.Delete), h.DeleteComment)
	}
}

// checkOwner runs the full decision for a write on an owned record.
func checkOwner(c *gin.Context, op access.Operation, owner uuid.UUID) bool {
	return authorize(c, access.Decide(access.Request{
		Identity:  middleware.CurrentIdentity(c),
		Operation: op,
		Policy:    access.ContentPolicy,
		Owner:     &owner,
	}))
}

// ListPosts godoc
// @Summary      List posts
// @Description  Newest first, optionally filtered by author
// @Tags         posts
// @Produce      json
// @Param        author     query     string  false  "Author user ID (UUID)"
// @Param        page       query     int     false  "Page number"    default(1)
// @Param        page_size  query     int     false  "Items per page" default(10) maximum(50)
// @Success      200  {object}  ListPostsResponse
// @Router       /library/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	v := c.Request.URL.Query()
	params := repository.PostListParams{
		Page: query.ParsePage(v, postPageSize, postMaxPageSize),
	}
	if id, err := uuid.Parse(strings.TrimSpace(v.Get("author"))); err == nil {
		params.AuthorID = &id
	}

	result, err := h.posts.List(c.Request.Context(), params)
	if err != nil {
		writeInternalError(c, err, "POST_LIST_FAILED", "failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, toListPostsResponse(result.Posts, params.Page, result.Total))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Content keeps safe formatting tags; the title is plain text
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreatePostRequest          true  "Post"
// @Success      201      {object}  PostResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Router       /library/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	post := model.Post{
		Title:    sanitize.Text(req.Title),
		Content:  sanitize.HTML(req.Content),
		AuthorID: middleware.CurrentIdentity(c).UserID,
	}
	if !h.checkPostFields(c, post) {
		return
	}

	ctx := c.Request.Context()

	if err := h.posts.Create(ctx, &post); err != nil {
		writeInternalError(c, err, "POST_CREATE_FAILED", "failed to create post")
		return
	}

	created, err := h.posts.FindByID(ctx, post.ID)
	if err != nil {
		writeInternalError(c, err, "POST_FETCH_FAILED", "failed to fetch created post")
		return
	}

	c.JSON(http.StatusCreated, PostResponse{Data: toPost(*created)})
}

func (h *PostHandler) checkPostFields(c *gin.Context, p model.Post) bool {
	if p.Title == "" {
		writeFieldError(c, "VALIDATION_FAILED", "title", "required", "title is empty after sanitization")
		return false
	}
	if p.Content == "" {
		writeFieldError(c, "VALIDATION_FAILED", "content", "required", "content is empty after sanitization")
		return false
	}
	return true
}

func (h *PostHandler) loadPost(c *gin.Context) (*model.Post, bool) {
	postID, ok := parseIDParam(c, "id", "INVALID_POST_ID", "invalid post id")
	if !ok {
		return nil, false
	}

	post, err := h.posts.FindByID(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "POST_NOT_FOUND", "post not found")
			return nil, false
		}
		writeInternalError(c, err, "POST_FETCH_FAILED", "failed to fetch post")
		return nil, false
	}
	return post, true
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID (UUID)"
// @Success      200  {object}  PostResponse
// @Failure      404  {object}  validation.ErrorResponse   "Post not found"
// @Router       /library/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, PostResponse{Data: toPost(*post)})
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Only the author or a superuser may edit
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Post ID (UUID)"
// @Param        payload  body      UpdatePostRequest  true  "Fields to update"
// @Success      200      {object}  PostResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      403      {object}  validation.ErrorResponse   "Not the author"
// @Failure      404      {object}  validation.ErrorResponse   "Post not found"
// @Router       /library/posts/{id} [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if !checkOwner(c, access.Update, post.AuthorID) {
		return
	}

	var req UpdatePostRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}
	if req.Title == nil && req.Content == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.Title != nil {
		post.Title = sanitize.Text(*req.Title)
	}
	if req.Content != nil {
		post.Content = sanitize.HTML(*req.Content)
	}
	if !h.checkPostFields(c, *post) {
		return
	}

	if err := h.posts.Update(c.Request.Context(), post); err != nil {
		writeInternalError(c, err, "POST_UPDATE_FAILED", "failed to update post")
		return
	}

	c.JSON(http.StatusOK, PostResponse{Data: toPost(*post)})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Removes the post and its comments. Only the author or a superuser may delete.
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      403  {object}  validation.ErrorResponse   "Not the author"
// @Failure      404  {object}  validation.ErrorResponse   "Post not found"
// @Router       /library/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if !checkOwner(c, access.Delete, post.AuthorID) {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), post.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "POST_NOT_FOUND", "post not found")
			return
		}
		writeInternalError(c, err, "POST_DELETE_FAILED", "failed to delete post")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListComments godoc
// @Summary      List comments on a post
// @Description  Oldest first
// @Tags         comments
// @Produce      json
// @Param        id         path      string  true   "Post ID (UUID)"
// @Param        page       query     int     false  "Page number"    default(1)
// @Param        page_size  query     int     false  "Items per page" default(10) maximum(50)
// @Success      200  {object}  ListCommentsResponse
// @Failure      404  {object}  validation.ErrorResponse   "Post not found"
// @Router       /library/posts/{id}/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	page := query.ParsePage(c.Request.URL.Query(), postPageSize, postMaxPageSize)

	comments, total, err := h.comments.ListByPost(c.Request.Context(), post.ID, page)
	if err != nil {
		writeInternalError(c, err, "COMMENT_LIST_FAILED", "failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, toListCommentsResponse(comments, page, total))
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string          true  "Post ID (UUID)"
// @Param        payload  body      CommentRequest  true  "Comment"
// @Success      201      {object}  CommentResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Not authenticated"
// @Failure      404      {object}  validation.ErrorResponse   "Post not found"
// @Router       /library/posts/{id}/comments [post]
func (h *PostHandler) CreateComment(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	comment := model.Comment{
		PostID:   post.ID,
		AuthorID: middleware.CurrentIdentity(c).UserID,
		Content:  sanitize.Text(req.Content),
	}
	if comment.Content == "" {
		writeFieldError(c, "VALIDATION_FAILED", "content", "required", "content is empty after sanitization")
		return
	}

	ctx := c.Request.Context()

	if err := h.comments.Create(ctx, &comment); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			writeError(c, http.StatusNotFound, "POST_NOT_FOUND", "post not found")
			return
		}
		writeInternalError(c, err, "COMMENT_CREATE_FAILED", "failed to create comment")
		return
	}

	created, err := h.comments.FindByID(ctx, comment.ID)
	if err != nil {
		writeInternalError(c, err, "COMMENT_FETCH_FAILED", "failed to fetch created comment")
		return
	}

	c.JSON(http.StatusCreated, CommentResponse{Data: toComment(*created)})
}

func (h *PostHandler) loadComment(c *gin.Context) (*model.Comment, bool) {
	commentID, ok := parseIDParam(c, "id", "INVALID_COMMENT_ID", "invalid comment id")
	if !ok {
		return nil, false
	}

	comment, err := h.comments.FindByID(c.Request.Context(), commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "comment not found")
			return nil, false
		}
		writeInternalError(c, err, "COMMENT_FETCH_FAILED", "failed to fetch comment")
		return nil, false
	}
	return comment, true
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Description  Only the author or a superuser may edit
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string          true  "Comment ID (UUID)"
// @Param        payload  body      CommentRequest  true  "New content"
// @Success      200      {object}  CommentResponse
// @Failure      403      {object}  validation.ErrorResponse   "Not the author"
// @Failure      404      {object}  validation.ErrorResponse   "Comment not found"
// @Router       /library/comments/{id} [patch]
func (h *PostHandler) UpdateComment(c *gin.Context) {
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}
	if !checkOwner(c, access.Update, comment.AuthorID) {
		return
	}

	var req CommentRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	comment.Content = sanitize.Text(req.Content)
	if comment.Content == "" {
		writeFieldError(c, "VALIDATION_FAILED", "content", "required", "content is empty after sanitization")
		return
	}

	if err := h.comments.Update(c.Request.Context(), comment); err != nil {
		writeInternalError(c, err, "COMMENT_UPDATE_FAILED", "failed to update comment")
		return
	}

	c.JSON(http.StatusOK, CommentResponse{Data: toComment(*comment)})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      403  {object}  validation.ErrorResponse   "Not the author"
// @Failure      404  {object}  validation.ErrorResponse   "Comment not found"
// @Router       /library/comments/{id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}
	if !checkOwner(c, access.Delete, comment.AuthorID) {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), comment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "comment not found")
			return
		}
		writeInternalError(c, err, "COMMENT_DELETE_FAILED", "failed to delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}

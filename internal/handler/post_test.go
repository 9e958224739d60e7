package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/testutil"
)

func TestCreatePost_SanitizesInput(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author := testutil.SeedUser(t, db, "writer@example.com")
	token := testutil.Token(t, author)

	w := do(t, router, http.MethodPost, "/api/library/posts", CreatePostRequest{
		Title:   "<b>Hello</b> world",
		Content: `<p onclick="steal()">Read <a href="https://example.com">this</a></p><script>alert(1)</script>`,
	}, token)
	expectStatus(t, w, http.StatusCreated)

	got := decode[PostResponse](t, w).Data
	if got.Title != "Hello world" {
		t.Errorf("expected tags stripped from title, got %q", got.Title)
	}
	if strings.Contains(got.Content, "script") || strings.Contains(got.Content, "onclick") {
		t.Errorf("expected unsafe markup removed, got %q", got.Content)
	}
	if !strings.Contains(got.Content, "<p>") || !strings.Contains(got.Content, "https://example.com") {
		t.Errorf("expected safe formatting kept, got %q", got.Content)
	}
	if got.Author.ID != author.ID || got.Author.Name != "writer@example.com" {
		t.Errorf("expected the caller as author, got %+v", got.Author)
	}

	w = do(t, router, http.MethodPost, "/api/library/posts", CreatePostRequest{
		Title:   "Empty",
		Content: "<script>alert(1)</script>",
	}, token)
	resp := expectErrorCode(t, w, http.StatusBadRequest, "VALIDATION_FAILED")
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "content" {
		t.Errorf("expected a content error, got %+v", resp.Errors)
	}
}

func TestPosts_AnonymousCanReadButNotWrite(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	token := testutil.Token(t, testutil.SeedUser(t, db, "writer@example.com"))
	w := do(t, router, http.MethodPost, "/api/library/posts", CreatePostRequest{Title: "Hi", Content: "Body"}, token)
	expectStatus(t, w, http.StatusCreated)
	post := decode[PostResponse](t, w).Data

	w = do(t, router, http.MethodGet, "/api/library/posts", nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[ListPostsResponse](t, w).Pagination.Total; got != 1 {
		t.Errorf("expected 1 post, got %d", got)
	}

	w = do(t, router, http.MethodGet, "/api/library/posts/"+post.ID.String(), nil, "")
	expectStatus(t, w, http.StatusOK)

	w = do(t, router, http.MethodPost, "/api/library/posts", CreatePostRequest{Title: "Hi", Content: "Body"}, "")
	expectErrorCode(t, w, http.StatusUnauthorized, "NOT_AUTHENTICATED")

	w = do(t, router, http.MethodGet, "/api/library/posts/"+uuid.New().String(), nil, "")
	expectErrorCode(t, w, http.StatusNotFound, "POST_NOT_FOUND")
}

func TestPosts_OnlyOwnerOrSuperuserMayModify(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	owner := testutil.Token(t, testutil.SeedUser(t, db, "owner@example.com"))
	other := testutil.Token(t, testutil.SeedUser(t, db, "other@example.com"))
	staff := testutil.Token(t, testutil.SeedUser(t, db, "staff@example.com", testutil.Staff()))
	super := testutil.Token(t, testutil.SeedUser(t, db, "root@example.com", testutil.Superuser()))

	w := do(t, router, http.MethodPost, "/api/library/posts", CreatePostRequest{Title: "Mine", Content: "Body"}, owner)
	expectStatus(t, w, http.StatusCreated)
	path := "/api/library/posts/" + decode[PostResponse](t, w).Data.ID.String()

	w = do(t, router, http.MethodPatch, path, map[string]any{"title": "Hijacked"}, other)
	expectErrorCode(t, w, http.StatusForbidden, "NOT_OWNER")

	w = do(t, router, http.MethodPatch, path, map[string]any{"title": "Hijacked"}, staff)
	expectErrorCode(t, w, http.StatusForbidden, "NOT_OWNER")

	w = do(t, router, http.MethodDelete, path, nil, other)
	expectErrorCode(t, w, http.StatusForbidden, "NOT_OWNER")

	w = do(t, router, http.MethodPatch, path, map[string]any{"title": "Edited"}, owner)
	expectStatus(t, w, http.StatusOK)
	if got := decode[PostResponse](t, w).Data.Title; got != "Edited" {
		t.Errorf("expected Edited, got %q", got)
	}

	w = do(t, router, http.MethodPatch, path, map[string]any{"content": "Moderated"}, super)
	expectStatus(t, w, http.StatusOK)

	w = do(t, router, http.MethodDelete, path, nil, super)
	expectStatus(t, w, http.StatusNoContent)
}

func TestComments_LifecycleAndCascade(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	owner := testutil.Token(t, testutil.SeedUser(t, db, "owner@example.com"))
	commenter := testutil.SeedUser(t, db, "commenter@example.com", func(u *model.User) {
		u.FirstName = "Grace"
		u.LastName = "Hopper"
	})
	commenterToken := testutil.Token(t, commenter)

	w := do(t, router, http.MethodPost, "/api/library/posts", CreatePostRequest{Title: "Post", Content: "Body"}, owner)
	expectStatus(t, w, http.StatusCreated)
	postID := decode[PostResponse](t, w).Data.ID.String()

	w = do(t, router, http.MethodPost, "/api/library/posts/"+postID+"/comments", CommentRequest{Content: "<i>Nice</i> post"}, commenterToken)
	expectStatus(t, w, http.StatusCreated)
	comment := decode[CommentResponse](t, w).Data
	if comment.Content != "Nice post" {
		t.Errorf("expected sanitized comment, got %q", comment.Content)
	}
	if comment.Author.Name != "Grace Hopper" {
		t.Errorf("expected the full name, got %q", comment.Author.Name)
	}

	w = do(t, router, http.MethodGet, "/api/library/posts/"+postID+"/comments", nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[ListCommentsResponse](t, w).Pagination.Total; got != 1 {
		t.Fatalf("expected 1 comment, got %d", got)
	}

	commentPath := "/api/library/comments/" + comment.ID.String()

	w = do(t, router, http.MethodPatch, commentPath, CommentRequest{Content: "Edited by the post owner"}, owner)
	expectErrorCode(t, w, http.StatusForbidden, "NOT_OWNER")

	w = do(t, router, http.MethodPatch, commentPath, CommentRequest{Content: "Great post"}, commenterToken)
	expectStatus(t, w, http.StatusOK)
	if got := decode[CommentResponse](t, w).Data.Content; got != "Great post" {
		t.Errorf("expected Great post, got %q", got)
	}

	w = do(t, router, http.MethodPost, "/api/library/posts/"+uuid.New().String()+"/comments", CommentRequest{Content: "Lost"}, commenterToken)
	expectErrorCode(t, w, http.StatusNotFound, "POST_NOT_FOUND")

	w = do(t, router, http.MethodDelete, "/api/library/posts/"+postID, nil, owner)
	expectStatus(t, w, http.StatusNoContent)

	var n int64
	db.Model(&model.Comment{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected comments to be deleted with the post, got %d", n)
	}

	w = do(t, router, http.MethodDelete, commentPath, nil, commenterToken)
	expectErrorCode(t, w, http.StatusNotFound, "COMMENT_NOT_FOUND")
}

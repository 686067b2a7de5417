package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	app := newQuietApplication()
	app.config.Environment = "test"
	app.config.Version = "1.0.0"
	app.config.UploadDir = t.TempDir()

	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/v1/healthcheck", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
}

func TestCategoryEndpoints(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "catowner", "catowner@example.com")

	t.Run("create requires authentication", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/categories", map[string]any{"name": "Go"}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("create category", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/categories", map[string]any{"name": "Go"}, &token)
		assert.Equal(t, http.StatusCreated, status)

		category, ok := body["category"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "Go", category["name"])
		assert.NotEmpty(t, category["id"])
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/categories", map[string]any{"name": "Go"}, &token)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "a category with this name already exists", body["error"])
	})

	t.Run("blank name fails validation", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/categories", map[string]any{"name": "   "}, &token)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("list is public", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/categories", nil)
		assert.Equal(t, http.StatusOK, status)

		categories, ok := body["categories"].([]any)
		assert.True(t, ok)
		assert.Len(t, categories, 1)
	})
}

func TestPostEndpoints(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "postowner", "postowner@example.com")

	var postId string

	t.Run("create post", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/posts", map[string]any{
			"title":    "Hello World",
			"content":  "The first post.",
			"category": "662f9f1e8a4b3c2d1e0f9a8b",
		}, &token)
		assert.Equal(t, http.StatusCreated, status)

		post, ok := body["post"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "Hello World", post["title"])

		postId, ok = post["id"].(string)
		assert.True(t, ok)
	})

	t.Run("create reports every invalid field", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/posts", map[string]any{
			"title":    "",
			"content":  "",
			"category": "nope",
		}, &token)
		assert.Equal(t, http.StatusUnprocessableEntity, status)

		errs, ok := body["error"].(map[string]any)
		assert.True(t, ok)
		assert.Len(t, errs, 3)
	})

	t.Run("get post by id", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/posts/"+postId, nil)
		assert.Equal(t, http.StatusOK, status)

		post, ok := body["post"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "Hello World", post["title"])
	})

	t.Run("get missing post", func(t *testing.T) {
		status, _, _ := ts.get(t, "/v1/posts/662f9f1e8a4b3c2d1e0f9a99", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("get malformed id", func(t *testing.T) {
		status, _, _ := ts.get(t, "/v1/posts/not-an-id", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("list posts with search", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/posts?search=hello", nil)
		assert.Equal(t, http.StatusOK, status)

		posts, ok := body["posts"].([]any)
		assert.True(t, ok)
		assert.Len(t, posts, 1)
		assert.Equal(t, float64(1), body["total"])
		assert.Equal(t, float64(1), body["pages"])
	})

	t.Run("list tolerates garbage paging values", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/posts?page=zero&limit=-3", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), body["page"])
	})

	t.Run("partial update", func(t *testing.T) {
		status, _, body := ts.put(t, "/v1/posts/"+postId, &token, map[string]any{
			"title": "Hello Again",
		})
		assert.Equal(t, http.StatusOK, status)

		post, ok := body["post"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "Hello Again", post["title"])
		assert.Equal(t, "The first post.", post["content"])
	})

	t.Run("delete post", func(t *testing.T) {
		status, _, _ := ts.delete(t, "/v1/posts/"+postId, &token)
		assert.Equal(t, http.StatusOK, status)

		status, _, _ = ts.get(t, "/v1/posts/"+postId, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCommentEndpoints(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	author := registerAndLogin(t, ts, "author", "author@example.com")
	other := registerAndLogin(t, ts, "other", "other@example.com")

	status, _, body := ts.post(t, "/v1/posts", map[string]any{
		"title":    "Commented Post",
		"content":  "Some content.",
		"category": "662f9f1e8a4b3c2d1e0f9a8b",
	}, &author)
	assert.Equal(t, http.StatusCreated, status)

	post := body["post"].(map[string]any)
	postId := post["id"].(string)

	var commentId string

	t.Run("create comment", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/comments/"+postId, map[string]any{
			"content": "first!",
		}, &author)
		assert.Equal(t, http.StatusCreated, status)

		comment, ok := body["comment"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "first!", comment["content"])

		user, ok := comment["user"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "author", user["username"])

		commentId, ok = comment["id"].(string)
		assert.True(t, ok)
	})

	t.Run("list comments is public", func(t *testing.T) {
		status, _, body := ts.get(t, fmt.Sprintf("/v1/comments/%s", postId), nil)
		assert.Equal(t, http.StatusOK, status)

		comments, ok := body["comments"].([]any)
		assert.True(t, ok)
		assert.Len(t, comments, 1)
	})

	t.Run("comments on a missing post read as empty", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/comments/662f9f1e8a4b3c2d1e0f9a99", nil)
		assert.Equal(t, http.StatusOK, status)

		comments, ok := body["comments"].([]any)
		assert.True(t, ok)
		assert.Len(t, comments, 0)
	})

	t.Run("only the author may delete", func(t *testing.T) {
		status, _, _ := ts.delete(t, "/v1/comments/"+commentId, &other)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("author deletes the comment", func(t *testing.T) {
		status, _, _ := ts.delete(t, "/v1/comments/"+commentId, &author)
		assert.Equal(t, http.StatusOK, status)

		status, _, _ = ts.delete(t, "/v1/comments/"+commentId, &author)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

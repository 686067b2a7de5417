package commentservice

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/postly/internal/common"
)

func setupTestUser(db *sql.DB, username string) (string, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	id := common.NewID()

	query := `
		INSERT INTO users (id, username, email, password)
		VALUES ($1, $2, $3, $4)`

	_, err = db.Exec(query, id, username, username+"@example.com", randomBytes)
	if err != nil {
		return "", err
	}

	return id, nil
}

func setupTestEnvironment(t *testing.T) (*CommentService, *MockMessageProducer, *sql.DB, func() error, string) {
	db := common.TestDB("file://../../migrations", t)
	mb := &MockMessageProducer{}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	userId, err := setupTestUser(db, "testuser")
	if err != nil {
		t.Fatalf("could not create test user: %v", err)
	}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM comments")
		return err
	}

	return NewCommentService(db, mb, common.FormatRefPolicy{}, logger), mb, db, cleanup, userId
}

func createRandomComment(db *sql.DB, postId, userId, content string) (string, error) {
	id := common.NewID()

	_, err := db.Exec("INSERT INTO comments (id, post_id, user_id, content) VALUES ($1, $2, $3, $4)", id, postId, userId, content)
	if err != nil {
		return "", err
	}

	return id, nil
}

func TestCreateComment(t *testing.T) {
	s, mb, db, cleanup, userId := setupTestEnvironment(t)

	postId := common.NewID()

	testCases := []struct {
		name        string
		req         *CreateCommentRequest
		expectedErr error
	}{
		{
			name: "valid comment",
			req: &CreateCommentRequest{
				PostID:  postId,
				UserID:  userId,
				Content: "nice",
			},
		},
		{
			name: "blank content",
			req: &CreateCommentRequest{
				PostID:  postId,
				UserID:  userId,
				Content: "   ",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
		{
			name: "malformed post id",
			req: &CreateCommentRequest{
				PostID:  "abc",
				UserID:  userId,
				Content: "nice",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"post_id": "must be a valid id"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			published := len(mb.Published)

			comment, err := s.CreateComment(ctx, tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotNil(t, comment)
				// author resolved to the username only
				assert.Equal(t, "testuser", comment.User.Username)
				assert.Equal(t, published+1, len(mb.Published))

				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM comments WHERE post_id = $1", tc.req.PostID).Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			} else {
				assert.Equal(t, published, len(mb.Published))
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

func TestCreateCommentBrokerFailure(t *testing.T) {
	s, mb, db, cleanup, userId := setupTestEnvironment(t)
	mb.Err = assert.AnError

	ctx := context.Background()

	// a broker outage must not fail the write
	comment, err := s.CreateComment(ctx, &CreateCommentRequest{
		PostID:  common.NewID(),
		UserID:  userId,
		Content: "nice",
	})
	assert.NoError(t, err)
	assert.NotNil(t, comment)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestGetCommentsByPostId(t *testing.T) {
	s, _, db, cleanup, userId := setupTestEnvironment(t)

	postId := common.NewID()

	for i := 0; i < 3; i++ {
		_, err := createRandomComment(db, postId, userId, "a comment")
		assert.NoError(t, err)
	}

	testCases := []struct {
		name          string
		postId        string
		expectedCount int
		expectedErr   error
	}{
		{
			name:          "post with comments",
			postId:        postId,
			expectedCount: 3,
		},
		{
			name:          "well-formed post id with no comments",
			postId:        common.NewID(),
			expectedCount: 0,
		},
		{
			name:        "malformed post id",
			postId:      "123",
			expectedErr: common.ValidationError{Errors: map[string]string{"post_id": "must be a valid id"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			comments, err := s.GetCommentsByPostId(ctx, tc.postId)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Len(t, comments, tc.expectedCount)
				for _, c := range comments {
					assert.Equal(t, "testuser", c.User.Username)
				}
			}
		})
	}

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestDeleteComment(t *testing.T) {
	s, _, db, cleanup, userId := setupTestEnvironment(t)

	otherUserId, err := setupTestUser(db, "otheruser")
	assert.NoError(t, err)

	postId := common.NewID()

	testCases := []struct {
		name        string
		actor       string
		missing     bool
		expectedErr error
	}{
		{
			name:  "author deletes own comment",
			actor: userId,
		},
		{
			name:        "other user is rejected",
			actor:       otherUserId,
			expectedErr: ErrNotPermitted,
		},
		{
			name:        "missing comment",
			actor:       userId,
			missing:     true,
			expectedErr: common.ErrRecordNotFound,
		},
		{
			name:        "malformed actor id",
			actor:       "???",
			expectedErr: common.ValidationError{Errors: map[string]string{"user_id": "must be a valid id"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			commentId, err := createRandomComment(db, postId, userId, "a comment")
			assert.NoError(t, err)

			id := commentId
			if tc.missing {
				id = common.NewID()
			}

			err = s.DeleteComment(ctx, id, tc.actor)
			assert.Equal(t, tc.expectedErr, err)

			var count int
			countErr := db.QueryRow("SELECT COUNT(*) FROM comments WHERE id = $1", commentId).Scan(&count)
			assert.NoError(t, countErr)

			if err == nil {
				// a subsequent lookup yields not found
				assert.Equal(t, 0, count)
				_, err := s.m.getCommentById(ctx, commentId)
				assert.Equal(t, common.ErrRecordNotFound, err)
			} else {
				// the comment must remain present after a rejected delete
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

package commentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/postly/internal/common"
)

var ErrNotPermitted = errors.New("not permitted")

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

func (m *CommentModel) insert(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	args := []any{
		comment.ID,
		comment.PostID,
		comment.User.ID,
		comment.Content,
	}

	return m.db.QueryRowContext(ctx, query, args...).Scan(&comment.CreatedAt)
}

// getCommentById returns the raw comment without author resolution; it is
// used for the ownership check on delete.
func (m *CommentModel) getCommentById(ctx context.Context, id string) (*Comment, error) {
	query := `
		SELECT id, post_id, user_id, content, created_at
		FROM comments
		WHERE id = $1`

	var comment Comment
	err := m.db.QueryRowContext(ctx, query, id).Scan(&comment.ID, &comment.PostID, &comment.User.ID, &comment.Content, &comment.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &comment, nil
}

// getCommentsByPostId resolves each author to a username at read time. A
// LEFT JOIN keeps comments readable even when the author row is gone.
func (m *CommentModel) getCommentsByPostId(ctx context.Context, postId string) ([]Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, u.username, c.content, c.created_at
		FROM comments c
		LEFT JOIN users u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := m.db.QueryContext(ctx, query, postId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		var username sql.NullString
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.User.ID, &username, &comment.Content, &comment.CreatedAt)
		if err != nil {
			return nil, err
		}
		comment.User.Username = username.String
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *CommentModel) getUsername(ctx context.Context, userId string) (string, error) {
	query := `
		SELECT username
		FROM users
		WHERE id = $1`

	var username string
	err := m.db.QueryRowContext(ctx, query, userId).Scan(&username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return "", nil
		default:
			return "", err
		}
	}

	return username, nil
}

func (m *CommentModel) deleteComment(ctx context.Context, id string) error {
	query := `
		DELETE FROM comments
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

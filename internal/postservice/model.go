package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sushihentaime/postly/internal/common"
)

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

func (m *PostModel) insert(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (id, title, content, category_id, featured_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	args := []any{
		post.ID,
		post.Title,
		post.Content,
		post.Category.ID,
		post.FeaturedImage,
	}

	return m.db.QueryRowContext(ctx, query, args...).Scan(&post.CreatedAt)
}

// getPostById resolves the category reference at read time. The reference is
// not enforced at write time, so a LEFT JOIN keeps posts with a dangling
// category readable.
func (m *PostModel) getPostById(ctx context.Context, id string) (*Post, error) {
	query := `
		SELECT p.id, p.title, p.content, p.category_id, c.name, p.featured_image, p.created_at
		FROM posts p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var post Post
	var categoryName sql.NullString
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Category.ID, &categoryName, &post.FeaturedImage, &post.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	post.Category.Name = categoryName.String

	return &post, nil
}

func (m *PostModel) update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, category_id = $3, featured_image = $4
		WHERE id = $5`

	res, err := m.db.ExecContext(ctx, query, post.Title, post.Content, post.Category.ID, post.FeaturedImage, post.ID)
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

func (m *PostModel) deletePost(ctx context.Context, id string) error {
	query := `
		DELETE FROM posts
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

// escapeLikePattern neutralizes the ILIKE metacharacters so a search term is
// always matched as literal text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// getPosts applies the search and category predicates, counts every matching
// record and then returns the requested page in a stable order. The count and
// the page share the same predicate so the total stays correct regardless of
// pagination.
func (m *PostModel) getPosts(ctx context.Context, f common.Filters) ([]Post, common.Metadata, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM posts p
		WHERE (p.title ILIKE $1 OR p.content ILIKE $1)
		AND (p.category_id = $2 OR $2 = '')`

	pattern := "%" + escapeLikePattern(f.Search) + "%"

	var total int
	err := m.db.QueryRowContext(ctx, countQuery, pattern, f.Category).Scan(&total)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	query := `
		SELECT p.id, p.title, p.content, p.category_id, c.name, p.featured_image, p.created_at
		FROM posts p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE (p.title ILIKE $1 OR p.content ILIKE $1)
		AND (p.category_id = $2 OR $2 = '')
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $3 OFFSET $4`

	rows, err := m.db.QueryContext(ctx, query, pattern, f.Category, f.Limit, f.Skip())
	if err != nil {
		return nil, common.Metadata{}, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		var categoryName sql.NullString
		err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Category.ID, &categoryName, &post.FeaturedImage, &post.CreatedAt)
		if err != nil {
			return nil, common.Metadata{}, err
		}
		post.Category.Name = categoryName.String
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, common.Metadata{}, err
	}

	return posts, common.CalculateMetadata(total, f.Page, f.Limit), nil
}

package categoryservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/postly/internal/common"
)

var ErrDuplicateCategory = errors.New("duplicate category name")

func newCategoryModel(db *sql.DB) *CategoryModel {
	return &CategoryModel{db: db}
}

// insert relies on the unique index on categories.name so that two
// concurrent inserts with the same name cannot both succeed. A duplicate
// insert fails without changing the table.
func (m *CategoryModel) insert(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (id, name)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, category.ID, category.Name)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "categories_name_key"):
			return ErrDuplicateCategory
		default:
			return err
		}
	}

	return nil
}

func (m *CategoryModel) getAll(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name
		FROM categories
		ORDER BY name ASC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var category Category
		err := rows.Scan(&category.ID, &category.Name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

package categoryservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/postly/internal/common"
)

func setupTestEnvironment(t *testing.T) (*CategoryService, *sql.DB, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM categories")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewCategoryService(db, cache), db, cleanup
}

func TestCreateCategory(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		input       string
		setup       func(ctx context.Context) error
		expectedErr error
	}{
		{
			name:  "valid name",
			input: "Tech",
		},
		{
			name:        "blank name",
			input:       "   ",
			expectedErr: common.ValidationError{Errors: map[string]string{"name": "must be provided"}},
		},
		{
			name:  "duplicate name",
			input: "Tech",
			setup: func(ctx context.Context) error {
				_, err := s.CreateCategory(ctx, "Tech")
				return err
			},
			expectedErr: ErrDuplicateCategory,
		},
		{
			name:  "same name different case",
			input: "tech",
			setup: func(ctx context.Context) error {
				_, err := s.CreateCategory(ctx, "Tech")
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			if tc.setup != nil {
				err := tc.setup(ctx)
				assert.NoError(t, err)
			}

			category, err := s.CreateCategory(ctx, tc.input)
			assert.Equal(t, tc.expectedErr, err)

			if tc.expectedErr == nil {
				assert.NotNil(t, category)
				assert.True(t, common.IDRX.MatchString(category.ID))
			}

			if err == ErrDuplicateCategory {
				// the failed insert must not have added a record
				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE name = $1", tc.input).Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

func TestGetCategories(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)

	ctx := context.Background()

	for _, name := range []string{"Tech", "Art", "Science"} {
		_, err := s.CreateCategory(ctx, name)
		assert.NoError(t, err)
	}

	categories, err := s.GetCategories(ctx)
	assert.NoError(t, err)
	assert.Len(t, categories, 3)
	assert.Equal(t, "Art", categories[0].Name)

	// second read comes from the cache
	cached, err := s.GetCategories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, categories, cached)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

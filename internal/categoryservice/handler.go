package categoryservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/postly/internal/common"
)

func NewCategoryService(db *sql.DB, c *common.Cache) *CategoryService {
	return &CategoryService{m: newCategoryModel(db), c: c}
}

// GetCategories returns every category. The full list is small enough that no
// pagination is applied; results are cached until the next create.
func (s *CategoryService) GetCategories(ctx context.Context) ([]Category, error) {
	if cached, ok := s.c.Get(common.CacheKeyCategories()); ok {
		if categories, ok := cached.([]Category); ok {
			return categories, nil
		}
	}

	categories, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyCategories(), categories)

	return categories, nil
}

// CreateCategory creates a new category. Names are unique case-sensitively;
// creating an existing name fails with ErrDuplicateCategory and leaves the
// store unchanged.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)

	v := common.NewValidator()
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	category := Category{
		ID:   common.NewID(),
		Name: name,
	}

	err := s.m.insert(ctx, &category)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyCategories())

	return &category, nil
}

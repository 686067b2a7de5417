package categoryservice

import (
	"database/sql"

	"github.com/sushihentaime/postly/internal/common"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryModel struct {
	db *sql.DB
}

type CategoryService struct {
	m *CategoryModel
	c *common.Cache
}

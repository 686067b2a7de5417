package postservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/postly/internal/categoryservice"
	"github.com/sushihentaime/postly/internal/common"
)

type Post struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Content is stored in Markdown format.
	Content       string                   `json:"content"`
	Category      categoryservice.Category `json:"category"`
	FeaturedImage string                   `json:"featured_image,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m    *PostModel
	c    *common.Cache
	refs common.RefPolicy
}

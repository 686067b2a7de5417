package commentservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/postly/internal/common"
)

// Author is the minimal display form of a comment's writer. Only the
// username leaves the service, never credentials or contact details.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	User      Author    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m      *CommentModel
	mb     common.MessageProducer
	refs   common.RefPolicy
	logger CommentLogger
}

type CommentLogger interface {
	Error(msg string, args ...any)
}

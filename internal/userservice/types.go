package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/postly/internal/common"
)

const AccessTokenTime time.Duration = 7 * 24 * time.Hour

var AnonymousUser = User{}

type UserService struct {
	m *DBModel
	c *common.Cache
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

type Token struct {
	Plain  string    `json:"token"`
	Hash   []byte    `json:"-"`
	UserID string    `json:"-"`
	Expiry time.Time `json:"expiry"`
}

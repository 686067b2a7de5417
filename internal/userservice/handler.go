package userservice

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sushihentaime/postly/internal/common"
)

var ErrAuthenticationFailure = fmt.Errorf("unauthorized access")

func NewUserService(db *sql.DB, c *common.Cache) *UserService {
	return &UserService{m: newUserModel(db), c: c}
}

// CreateUser registers a new user account and returns it.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		ID:       common.NewID(),
		Username: username,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and issues a new access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*Token, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	match, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrAuthenticationFailure
	}

	return s.m.createAccessToken(ctx, user.ID)
}

// GetUserByAccessToken resolves a bearer token to its user. Lookups are
// cached briefly so every authenticated request does not hit the database.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)

	if cached, ok := s.c.Get(common.CacheKeyUserByAccessToken(hash)); ok {
		if user, ok := cached.(*User); ok {
			return user, nil
		}
	}

	user, err := s.m.getUserByTokenHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyUserByAccessToken(hash), user, 5*time.Minute)

	return user, nil
}

// LogoutUser revokes every access token held by the user.
func (s *UserService) LogoutUser(ctx context.Context, userId string) error {
	v := common.NewValidator()
	common.ValidateID(v, "user_id", userId)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteAccessTokens(ctx, userId)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

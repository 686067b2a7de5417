package userservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/postly/internal/common"
)

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewUserService(db, cache), db, cleanup
}

func TestCreateUser(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		username    string
		email       string
		password    string
		setup       func(ctx context.Context) error
		expectedErr error
	}{
		{
			name:     "valid user",
			username: "testuser",
			email:    "testuser@example.com",
			password: "Test_1234!",
		},
		{
			name:        "weak password",
			username:    "testuser",
			email:       "testuser@example.com",
			password:    "password",
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one symbol"}},
		},
		{
			name:     "duplicate username",
			username: "testuser",
			email:    "other@example.com",
			password: "Test_1234!",
			setup: func(ctx context.Context) error {
				_, err := s.CreateUser(ctx, "testuser", "testuser@example.com", "Test_1234!")
				return err
			},
			expectedErr: ErrDuplicateUsername,
		},
		{
			name:     "duplicate email",
			username: "otheruser",
			email:    "testuser@example.com",
			password: "Test_1234!",
			setup: func(ctx context.Context) error {
				_, err := s.CreateUser(ctx, "testuser", "testuser@example.com", "Test_1234!")
				return err
			},
			expectedErr: ErrDuplicateEmail,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			if tc.setup != nil {
				err := tc.setup(ctx)
				assert.NoError(t, err)
			}

			user, err := s.CreateUser(ctx, tc.username, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.True(t, common.IDRX.MatchString(user.ID))

				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
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

func TestLoginUser(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)

	ctx := context.Background()

	_, err := s.CreateUser(ctx, "testuser", "testuser@example.com", "Test_1234!")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{
			name:     "valid credentials",
			username: "testuser",
			password: "Test_1234!",
		},
		{
			name:        "wrong password",
			username:    "testuser",
			password:    "Wrong_1234!",
			expectedErr: ErrAuthenticationFailure,
		},
		{
			name:        "unknown user",
			username:    "nobody",
			password:    "Test_1234!",
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := s.LoginUser(ctx, tc.username, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotNil(t, token)
				assert.Len(t, token.Plain, 26)
			}
		})
	}

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestGetUserByAccessToken(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)

	ctx := context.Background()

	user, err := s.CreateUser(ctx, "testuser", "testuser@example.com", "Test_1234!")
	assert.NoError(t, err)

	token, err := s.LoginUser(ctx, "testuser", "Test_1234!")
	assert.NoError(t, err)

	got, err := s.GetUserByAccessToken(ctx, token.Plain)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// second lookup is served from the cache
	cached, err := s.GetUserByAccessToken(ctx, token.Plain)
	assert.NoError(t, err)
	assert.Equal(t, got, cached)

	_, err = s.GetUserByAccessToken(ctx, "AAAAAAAAAAAAAAAAAAAAAAAAAA")
	assert.Equal(t, ErrNotFound, err)

	_, err = s.GetUserByAccessToken(ctx, "short")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"token": "invalid token"}}, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestLogoutUser(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)

	ctx := context.Background()

	user, err := s.CreateUser(ctx, "testuser", "testuser@example.com", "Test_1234!")
	assert.NoError(t, err)

	_, err = s.LoginUser(ctx, "testuser", "Test_1234!")
	assert.NoError(t, err)

	err = s.LogoutUser(ctx, user.ID)
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM auth_tokens WHERE user_id = $1", user.ID).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id := NewID()
		assert.True(t, IDRX.MatchString(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestFormatRefPolicy(t *testing.T) {
	testCases := []struct {
		name        string
		id          string
		expectedErr map[string]string
	}{
		{
			name: "valid id",
			id:   "662f9f1e8a4b3c2d1e0f9a8b",
		},
		{
			name:        "empty id",
			id:          "",
			expectedErr: map[string]string{"category": "must be provided"},
		},
		{
			name:        "too short",
			id:          "662f9f1e",
			expectedErr: map[string]string{"category": "must be a valid id"},
		},
		{
			name:        "uppercase hex",
			id:          "662F9F1E8A4B3C2D1E0F9A8B",
			expectedErr: map[string]string{"category": "must be a valid id"},
		},
		{
			name:        "non-hex characters",
			id:          "zzzzzzzzzzzzzzzzzzzzzzzz",
			expectedErr: map[string]string{"category": "must be a valid id"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			FormatRefPolicy{}.CheckRef(v, "category", tc.id)

			if tc.expectedErr == nil {
				assert.True(t, v.Valid())
			} else {
				assert.Equal(t, tc.expectedErr, v.Errors)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	v := NewValidator()
	ValidateID(v, "id", "662f9f1e8a4b3c2d1e0f9a8b")
	assert.True(t, v.Valid())

	v = NewValidator()
	ValidateID(v, "id", "not-an-id")
	assert.Equal(t, map[string]string{"id": "must be a valid id"}, v.Errors)
}

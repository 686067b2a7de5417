package mediaservice

import (
	"io"
	"path/filepath"
)

// MockStore records saved names and returns a fixed-form reference without
// touching the filesystem.
type MockStore struct {
	Saved []string
	Err   error
}

func (m *MockStore) Save(originalName string, r io.Reader) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	m.Saved = append(m.Saved, originalName)
	return "/uploads/mock" + filepath.Ext(originalName), nil
}

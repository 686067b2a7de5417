package mediaservice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage stores uploaded bytes and returns the reference path persisted on
// the post record. Callers never see where or how the bytes live.
type Storage interface {
	Save(originalName string, r io.Reader) (string, error)
}

// DiskStore writes uploads to a local directory. Files are keyed by upload
// time in milliseconds plus the original file extension and served from
// /uploads.
type DiskStore struct {
	dir string
	now func() time.Time
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}

	return &DiskStore{dir: dir, now: time.Now}, nil
}

func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	name := strconv.FormatInt(s.now().UnixMilli(), 10) + filepath.Ext(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}

	_, err = io.Copy(f, r)
	if err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}

package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/awantoch/procmap/utils"
)

// FilesystemStore implements Store using the local filesystem. This is the
// default store for CLI use.
type FilesystemStore struct {
	dir string
}

// NewFilesystemStore creates a FilesystemStore rooted at dir, creating the
// directory if needed.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FilesystemStore{dir: dir}, nil
}

// Put stores the artifact as a file. Returns a file:// URL.
func (f *FilesystemStore) Put(ctx context.Context, data []byte, mime, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("artifact-%d", time.Now().UnixNano())
	}
	path := filepath.Join(f.dir, filename)
	// Write atomically
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", err
	}
	return "file://" + path, nil
}

// Get retrieves the artifact from a file:// URL.
func (f *FilesystemStore) Get(ctx context.Context, url string) ([]byte, error) {
	const prefix = "file://"
	if !strings.HasPrefix(url, prefix) {
		return nil, utils.Errorf("invalid file URL: %s", url)
	}
	return os.ReadFile(url[len(prefix):])
}

package tokenstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// tokenFileName is the fixed key the access token is stored under
const tokenFileName = "access_token"

var _ Store = (*FileStore)(nil)

// FileStore persists the access token as a single file in the data folder,
// readable only by the owning user.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store under dataFolder, creating the
// folder if needed.
func NewFileStore(dataFolder string) (*FileStore, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrap(err, "tokenstore.NewFileStore create data folder")
	}
	return &FileStore{path: filepath.Join(dataFolder, tokenFileName)}, nil
}

func (fs *FileStore) Get() (string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "tokenstore.FileStore.Get")
	}
	return strings.TrimSpace(string(data)), nil
}

func (fs *FileStore) Set(token string) error {
	if err := os.WriteFile(fs.path, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "tokenstore.FileStore.Set")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "tokenstore.FileStore.Clear")
	}
	return nil
}

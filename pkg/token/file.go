package token

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// FileStore persists the credential in a file under the user configuration
// directory. The file is created with mode 0600.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	configDirName = "guides"
	tokenFileName = "token"
	tokenFilePerm = fs.FileMode(0600)
	configDirPerm = fs.FileMode(0700)
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFileStore creates a file-backed store rooted at dir. When dir is empty
// the user configuration directory is used.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, configDirName)
	}
	return &FileStore{path: filepath.Join(dir, tokenFileName)}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (s *FileStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), configDirPerm); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), tokenFilePerm)
}

func (s *FileStore) RemoveToken() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Path returns the location of the credential file.
func (s *FileStore) Path() string {
	return s.path
}

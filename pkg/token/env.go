package token

import (
	"errors"
	"os"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// EnvStore reads the credential from an environment variable injected by the
// hosting environment. It is read-only: the host owns the credential's
// lifecycle, so writes and removals are rejected.
type EnvStore struct {
	key string
}

var _ Store = (*EnvStore)(nil)

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// EnvToken is the default environment variable consulted by Detect.
const EnvToken = "GUIDES_ADMIN_TOKEN"

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewEnvStore creates a store backed by the named environment variable. When
// key is empty, EnvToken is used.
func NewEnvStore(key string) *EnvStore {
	if key == "" {
		key = EnvToken
	}
	return &EnvStore{key: key}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (s *EnvStore) Token() (string, error) {
	return strings.TrimSpace(os.Getenv(s.key)), nil
}

func (s *EnvStore) SetToken(string) error {
	return errors.New("credential is provided by the environment and cannot be replaced")
}

func (s *EnvStore) RemoveToken() error {
	return errors.New("credential is provided by the environment and cannot be removed")
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *EnvStore) present() bool {
	token, _ := s.Token()
	return token != ""
}

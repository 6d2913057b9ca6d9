// Package token stores the operator's admin credential between sessions.
// The credential is entered once and kept locally; there is no server-side
// session. A Store abstracts the storage medium so a hosting shell can
// substitute its own (see EnvStore), and an optional notifier lets the host
// react when the credential is found to be expired.
package token

import (
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Store reads, writes and clears the admin credential.
type Store interface {
	// Token returns the stored credential, or empty string when none is stored.
	Token() (string, error)

	// SetToken stores the credential, replacing any previous value.
	SetToken(string) error

	// RemoveToken clears the stored credential.
	RemoveToken() error
}

// Notifier is invoked when a stored credential is detected to be expired or
// invalid, so a hosting shell can log the operator out on its side. A nil
// notifier is ignored.
type Notifier func()

// Status is the tracked validity of the credential.
type Status int

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	StatusNone    Status = iota // no credential stored
	StatusValid                 // last probe succeeded
	StatusInvalid               // last probe failed
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "none"
	}
}

// Bearer normalises a credential into an Authorization header value,
// tolerating values stored with the "Bearer " prefix already present.
func Bearer(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}

// Detect selects the credential store for this process: the environment
// variable when the hosting environment injected one, otherwise the
// file-backed store. dir is passed to NewFileStore and may be empty.
func Detect(env, dir string) (Store, error) {
	if s := NewEnvStore(env); s.present() {
		return s, nil
	}
	return NewFileStore(dir)
}

package credentials

import (
	"os"
	"path"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/michaelIldefonso/Rekapo-admin/internal/file"
)

// Store persists the operator's opaque bearer token across process runs. It
// deliberately surfaces no errors: if the underlying medium is unavailable,
// Set and Clear are no-ops and Get reports the token as absent, so a broken
// home directory can never be mistaken for an authenticated state.
type Store interface {
	// Get returns the stored token, if any.
	Get() (string, bool)
	// Set durably stores the specified token.
	Set(token string)
	// Clear removes any stored token.
	Clear()
}

type fileStore struct {
	path string
}

// NewFileStore returns a Store backed by a file in the rekapo-admin home
// directory (~/.rekapo-admin/token).
func NewFileStore() Store {
	homeDir, err := homedir.Dir()
	if err != nil {
		return &fileStore{}
	}
	return &fileStore{
		path: path.Join(homeDir, ".rekapo-admin", "token"),
	}
}

// NewFileStoreAt returns a Store backed by a file at the specified path.
func NewFileStoreAt(path string) Store {
	return &fileStore{path: path}
}

func (f *fileStore) Get() (string, bool) {
	if f.path == "" || !file.Exists(f.path) {
		return "", false
	}
	tokenBytes, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return "", false
	}
	return token, true
}

func (f *fileStore) Set(token string) {
	if f.path == "" {
		return
	}
	if err := os.MkdirAll(path.Dir(f.path), 0755); err != nil {
		return
	}
	os.WriteFile(f.path, []byte(token), 0600) // nolint: errcheck
}

func (f *fileStore) Clear() {
	if f.path == "" {
		return
	}
	os.Remove(f.path) // nolint: errcheck
}

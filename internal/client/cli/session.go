package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/filex"
)

// session persists the token between invocations.
type session struct {
	path string
}

func (s *session) load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *session) save(token string) error {
	if _, err := filex.EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}
	return filex.WriteFileAtomic(s.path, []byte(token), 0o600)
}

func (s *session) clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

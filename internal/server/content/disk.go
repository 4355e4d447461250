package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/google/uuid"
)

// DiskEngine keeps blobs as files named by handle inside one directory.
type DiskEngine struct {
	dir string
}

func NewDiskEngine(dir string) *DiskEngine {
	return &DiskEngine{dir: dir}
}

func (e *DiskEngine) Store(ctx context.Context, dataBase64 string) (string, error) {
	data, err := decodeBase64(dataBase64)
	if err != nil {
		return "", err
	}

	ref := uuid.NewString()
	if err := e.Write(ctx, ref, data); err != nil {
		return "", err
	}
	return ref, nil
}

func (e *DiskEngine) Write(_ context.Context, ref string, data []byte) error {
	p, ok := e.path(ref)
	if !ok {
		return fmt.Errorf("%w: invalid handle %q", common.ErrorStorage, ref)
	}
	// the directory may have been removed since the last write
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	return nil
}

func (e *DiskEngine) Read(_ context.Context, ref string) ([]byte, error) {
	p, ok := e.path(ref)
	if !ok {
		return nil, common.ErrorNotFound
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	return data, nil
}

func (e *DiskEngine) Delete(_ context.Context, ref string) error {
	p, ok := e.path(ref)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	return nil
}

// path resolves ref inside the base directory. Handles with separators or
// dot segments are rejected so a handle can never escape the directory.
func (e *DiskEngine) path(ref string) (string, bool) {
	if ref == "" || ref == "." || ref == ".." || filepath.Base(ref) != ref {
		return "", false
	}
	return filepath.Join(e.dir, ref), true
}

package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// memberPath resolves an archive member name below dest, rejecting names
// that would escape it (absolute paths or ".." components).
func memberPath(dest, name string) (string, error) {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("unsafe member name %q", name)
	}
	return filepath.Join(dest, rel), nil
}

// writeStream copies data into a freshly created file at path.
func writeStream(fsys afero.Fs, path string, data io.Reader) (err error) {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if _, err = io.Copy(f, data); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}

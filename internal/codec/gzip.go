package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

// GzipExtract decompresses the single gzip stream at src into the file at
// dest. Gzip has no container semantics, so there are no members to select.
func GzipExtract(fsys afero.Fs, src, dest string) error {
	f, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gr.Close()

	if err := writeStream(fsys, dest, gr); err != nil {
		return fmt.Errorf("failed to extract gzip stream: %w", err)
	}
	return nil
}

// GzipCompress writes data as a single gzip stream at dest.
func GzipCompress(fsys afero.Fs, dest string, data io.Reader) (err error) {
	f, err := fsys.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	gw := gzip.NewWriter(f)
	if _, err = io.Copy(gw, data); err != nil {
		return errors.Join(fmt.Errorf("failed to write gzip stream: %w", err), gw.Close())
	}
	if err = gw.Close(); err != nil {
		return fmt.Errorf("failed to close gzip stream: %w", err)
	}
	return nil
}

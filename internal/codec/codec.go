// Package codec implements the container and stream codecs backing the
// archive facade: a zip reader/writer, a tar reader/writer parameterized by
// an outer compression stream, and a single-stream gzip codec.
package codec

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/afero"
)

// Compression selects the outer stream codec wrapped around a tar container.
type Compression string

const (
	CompressionNone  Compression = "none"
	CompressionGzip  Compression = "gzip"
	CompressionBzip2 Compression = "bzip2"
	CompressionXz    Compression = "xz"
	CompressionZstd  Compression = "zstd"
)

// ErrMemberNotFound reports that a requested member name does not exist in
// the container.
var ErrMemberNotFound = errors.New("member not found in archive")

// Entry describes one member of a container.
type Entry struct {
	Name           string
	Size           int64
	CompressedSize int64
	ModTime        time.Time
	IsDir          bool
	IsFile         bool
	Mode           fs.FileMode
}

// Reader enumerates and extracts members of an open container. A Reader is
// valid for a single pass of operations and must be closed by the caller.
type Reader interface {
	// List returns every member in container order.
	List() ([]Entry, error)

	// Extract writes members below dest and returns the resulting paths.
	// A nil members slice extracts everything; otherwise only the named
	// members are extracted and a missing name fails with
	// ErrMemberNotFound.
	Extract(dest string, members []string) ([]string, error)

	// Read returns the decompressed bytes of one regular-file member.
	Read(name string) ([]byte, error)

	Close() error
}

// Writer appends members to a container being created. Close finalizes the
// container and must be called exactly once.
type Writer interface {
	WriteBytes(arcname string, data []byte) error
	WriteFile(arcname, src string) error
	Close() error
}

// ensureDir creates dest and any missing parents.
func ensureDir(fsys afero.Fs, dest string) error {
	return fsys.MkdirAll(dest, 0o755)
}

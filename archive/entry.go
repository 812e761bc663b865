package archive

import (
	"io/fs"
	"time"
)

// Entry describes one member of an archive. Entries are produced transiently
// by listing operations and are not persisted.
type Entry struct {
	// Name is the member's path within the archive, slash-separated.
	Name string

	// Size is the uncompressed size in bytes.
	Size int64

	// CompressedSize is the stored size in bytes, 0 where the container
	// does not track it (tar).
	CompressedSize int64

	// ModTime is the last-modified timestamp, zero when absent.
	ModTime time.Time

	IsDir  bool
	IsFile bool

	// Mode holds POSIX permission bits, 0 when the container does not
	// record them (zip).
	Mode fs.FileMode
}

// Info is an on-demand snapshot of an archive: its path, format, on-disk
// size and ordered member listing.
type Info struct {
	Path    string
	Format  Format
	Size    int64
	Entries []Entry
}

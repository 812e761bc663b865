// Package archive provides unified create, list, extract and read operations
// over zip, tar (plain, gzip, bzip2, xz, zstd) and single-stream gzip files
// behind one facade. Formats are detected from file name suffixes and mapped
// to container/codec pairings; callers never branch on format themselves.
package archive

import (
	"fmt"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/blackroad/roadarchive/internal/codec"
)

// Archive is the read facade over an existing archive file. It holds no open
// handles between calls: every operation reopens the underlying container
// and closes it before returning.
type Archive struct {
	path   string
	format Format
	fsys   afero.Fs
	logger *zap.Logger
}

// Open constructs a read facade over the archive at path. The format is
// inferred from the path's suffix and fails with ErrUnknownFormat when no
// suffix matches; WithFormat overrides the inference.
func Open(path string, opts ...Option) (*Archive, error) {
	o := newOptions(opts)

	format := o.format
	if format == "" {
		var err error
		format, err = DetectFormat(path)
		if err != nil {
			return nil, err
		}
	}
	if _, ok := layouts[format]; !ok {
		return nil, fmt.Errorf("%s: %w", format, ErrUnknownFormat)
	}

	return &Archive{
		path:   path,
		format: format,
		fsys:   o.fsys,
		logger: o.logger,
	}, nil
}

// Path returns the archive's filesystem path.
func (a *Archive) Path() string {
	return a.path
}

// Format returns the archive's resolved format.
func (a *Archive) Format() Format {
	return a.format
}

// openReader opens the container matching the archive's format. Stream-only
// formats have no container to open and fail with ErrUnsupported.
func (a *Archive) openReader() (codec.Reader, error) {
	l := layouts[a.format]
	switch l.container {
	case containerZip:
		return codec.OpenZipReader(a.fsys, a.path)
	case containerTar:
		return codec.OpenTarReader(a.fsys, a.path, l.compression)
	default:
		return nil, fmt.Errorf("%s archives have no members: %w", a.format, ErrUnsupported)
	}
}

// List returns every member of the archive in container order.
func (a *Archive) List() ([]Entry, error) {
	r, err := a.openReader()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	members, err := r.List()
	if err != nil {
		return nil, err
	}

	a.logger.Debug("listed archive members",
		zap.String("path", a.path),
		zap.Int("count", len(members)))

	return lo.Map(members, func(e codec.Entry, _ int) Entry {
		return Entry(e)
	}), nil
}

// Extract writes members into dest, creating it (and any intermediate
// directories) as needed. With no members given, every member is extracted;
// otherwise only the named members are, and a missing name fails with
// ErrMemberNotFound. For plain gzip the single stream is decompressed to a
// file named by stripping the compressed suffix from the archive's base
// name. Returns the resulting filesystem paths.
func (a *Archive) Extract(dest string, members ...string) ([]string, error) {
	if dest == "" {
		dest = "."
	}
	if err := a.fsys.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination %s: %w", dest, err)
	}

	if layouts[a.format].container == containerStream {
		if len(members) > 0 {
			return nil, fmt.Errorf("%s archives have no named members: %w", a.format, ErrUnsupported)
		}
		out := filepath.Join(dest, stemName(a.path))
		if err := codec.GzipExtract(a.fsys, a.path, out); err != nil {
			return nil, err
		}
		a.logger.Debug("extracted archive",
			zap.String("path", a.path),
			zap.String("dest", dest),
			zap.Int("count", 1))
		return []string{out}, nil
	}

	r, err := a.openReader()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var selection []string
	if len(members) > 0 {
		selection = members
	}

	paths, err := r.Extract(dest, selection)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("extracted archive",
		zap.String("path", a.path),
		zap.String("dest", dest),
		zap.Int("count", len(paths)))

	return paths, nil
}

// ExtractFile extracts a single named member into dest and returns its
// resulting path.
func (a *Archive) ExtractFile(name, dest string) (string, error) {
	paths, err := a.Extract(dest, name)
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// Read returns the decompressed bytes of one named member without touching
// the filesystem. Fails with ErrMemberNotFound when the member is absent and
// with ErrUnsupported on stream-only formats, which have no named members.
func (a *Archive) Read(name string) ([]byte, error) {
	r, err := a.openReader()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Read(name)
}

// Info returns a snapshot combining the archive file's own size with its
// member listing. Stream-only formats have no members and yield an empty
// listing.
func (a *Archive) Info() (Info, error) {
	st, err := a.fsys.Stat(a.path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat archive: %w", err)
	}

	var entries []Entry
	if layouts[a.format].container != containerStream {
		entries, err = a.List()
		if err != nil {
			return Info{}, err
		}
	}

	return Info{
		Path:    a.path,
		Format:  a.format,
		Size:    st.Size(),
		Entries: entries,
	}, nil
}

// stemName strips the final extension from path's base name, mirroring how
// "data.txt.gz" decompresses to "data.txt".
func stemName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base
	}
	return base[:len(base)-len(ext)]
}

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/blackroad/roadarchive/internal/codec"
)

// pendingEntry is one queued addition: either a source file reference or an
// in-memory payload. src == "" marks the in-memory case.
type pendingEntry struct {
	arcname string
	src     string
	data    []byte
}

// Builder is the write facade: it accumulates pending additions and flushes
// them to a codec-backed writer on Build. Add methods return the receiver
// for fluent chaining.
type Builder struct {
	path    string
	format  Format
	fsys    afero.Fs
	logger  *zap.Logger
	pending []pendingEntry
	err     error
}

// NewBuilder constructs a write facade targeting path. The format is
// inferred from the path's suffix, falling back to zip when nothing matches
// (creation is permissive where inspection is strict); WithFormat overrides
// the inference.
func NewBuilder(path string, opts ...Option) *Builder {
	o := newOptions(opts)

	format := o.format
	if format == "" {
		format = detectOrDefault(path)
	}

	return &Builder{
		path:   path,
		format: format,
		fsys:   o.fsys,
		logger: o.logger,
	}
}

// Path returns the build target path.
func (b *Builder) Path() string {
	return b.path
}

// Format returns the resolved target format.
func (b *Builder) Format() Format {
	return b.format
}

// AddFile queues a single file for inclusion under arcname, or under its
// base name when arcname is empty. Existence is not checked here; a missing
// source surfaces as an error at Build.
func (b *Builder) AddFile(src, arcname string) *Builder {
	if arcname == "" {
		arcname = filepath.Base(src)
	}
	b.pending = append(b.pending, pendingEntry{arcname: arcname, src: src})
	return b
}

// AddDir recursively queues every regular file below src. Each file's
// archive name is its path relative to src, rooted under arcname (or src's
// base name when arcname is empty). Directories are not queued as entries,
// so empty subdirectories do not appear in the built archive.
func (b *Builder) AddDir(src, arcname string) *Builder {
	base := arcname
	if base == "" {
		base = filepath.Base(src)
	}

	walkErr := afero.Walk(b.fsys, src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		b.pending = append(b.pending, pendingEntry{
			arcname: path.Join(base, filepath.ToSlash(rel)),
			src:     p,
		})
		return nil
	})
	if walkErr != nil && b.err == nil {
		b.err = fmt.Errorf("failed to walk %s: %w", src, walkErr)
	}

	return b
}

// AddBytes queues an in-memory payload under arcname.
func (b *Builder) AddBytes(data []byte, arcname string) *Builder {
	b.pending = append(b.pending, pendingEntry{arcname: arcname, data: data})
	return b
}

// Build writes every queued entry, in queue order, to a freshly created (or
// truncated) archive at the target path and returns a read facade bound to
// it. Duplicate arcnames are not detected. Building twice writes the target
// twice.
func (b *Builder) Build() (*Archive, error) {
	if b.err != nil {
		return nil, b.err
	}

	l, ok := layouts[b.format]
	if !ok {
		return nil, fmt.Errorf("%s: %w", b.format, ErrUnknownFormat)
	}

	b.logger.Debug("building archive",
		zap.String("path", b.path),
		zap.String("format", string(b.format)),
		zap.Int("members", len(b.pending)))

	if l.container == containerStream {
		if err := b.buildStream(); err != nil {
			return nil, err
		}
	} else if err := b.buildContainer(l); err != nil {
		return nil, err
	}

	return &Archive{
		path:   b.path,
		format: b.format,
		fsys:   b.fsys,
		logger: b.logger,
	}, nil
}

func (b *Builder) buildContainer(l layout) (err error) {
	var w codec.Writer
	switch l.container {
	case containerZip:
		w, err = codec.OpenZipWriter(b.fsys, b.path)
	case containerTar:
		w, err = codec.OpenTarWriter(b.fsys, b.path, l.compression)
	}
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()

	for _, entry := range b.pending {
		if entry.src == "" {
			err = w.WriteBytes(entry.arcname, entry.data)
		} else {
			err = w.WriteFile(entry.arcname, entry.src)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// buildStream writes a plain gzip target. Gzip holds a single compressed
// stream, so exactly one queued entry is required.
func (b *Builder) buildStream() error {
	if len(b.pending) != 1 {
		return fmt.Errorf("%s archives hold a single stream, got %d members: %w",
			b.format, len(b.pending), ErrUnsupported)
	}

	entry := b.pending[0]
	var data io.Reader
	if entry.src == "" {
		data = bytes.NewReader(entry.data)
	} else {
		f, err := b.fsys.Open(entry.src)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", entry.src, err)
		}
		defer f.Close()
		data = f
	}

	return codec.GzipCompress(b.fsys, b.path, data)
}

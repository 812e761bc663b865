package codec

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

type tarReader struct {
	fsys        afero.Fs
	f           afero.File
	tr          *tar.Reader
	closeStream func() error
}

// OpenTarReader opens path as a tar container wrapped in the given outer
// compression stream. The returned Reader is single-pass.
func OpenTarReader(fsys afero.Fs, path string, compression Compression) (Reader, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	stream, closeStream, err := decompressStream(f, compression)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &tarReader{
		fsys:        fsys,
		f:           f,
		tr:          tar.NewReader(stream),
		closeStream: closeStream,
	}, nil
}

// decompressStream wraps r in the decoder matching compression. The second
// return value releases decoder resources and may be nil.
func decompressStream(r io.Reader, compression Compression) (io.Reader, func() error, error) {
	switch compression {
	case CompressionNone:
		return r, nil, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return gr, gr.Close, nil
	case CompressionBzip2:
		br, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open bzip2 stream: %w", err)
		}
		return br, br.Close, nil
	case CompressionXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open xz stream: %w", err)
		}
		return xr, nil, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return zr, func() error {
			zr.Close()
			return nil
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression type: %s", compression)
	}
}

func (r *tarReader) List() ([]Entry, error) {
	var entries []Entry
	for {
		h, err := r.tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar container: %w", err)
		}
		entries = append(entries, Entry{
			Name:    h.Name,
			Size:    h.Size,
			ModTime: h.ModTime,
			IsDir:   h.Typeflag == tar.TypeDir,
			IsFile:  h.Typeflag == tar.TypeReg,
			Mode:    fs.FileMode(h.Mode).Perm(),
		})
	}
	return entries, nil
}

func (r *tarReader) Extract(dest string, members []string) ([]string, error) {
	if members == nil {
		return r.extractAll(dest)
	}

	wanted := make(map[string]string, len(members))
	for _, name := range members {
		wanted[name] = ""
	}

	for {
		h, err := r.tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar container: %w", err)
		}
		if _, ok := wanted[h.Name]; !ok {
			continue
		}
		path, err := r.extractOne(dest, h)
		if err != nil {
			return nil, err
		}
		wanted[h.Name] = path
	}

	paths := make([]string, 0, len(members))
	for _, name := range members {
		path := wanted[name]
		if path == "" {
			return nil, fmt.Errorf("%q: %w", name, ErrMemberNotFound)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *tarReader) extractAll(dest string) ([]string, error) {
	var paths []string
	for {
		h, err := r.tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar container: %w", err)
		}
		path, err := r.extractOne(dest, h)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// extractOne materializes a single header. Non-regular, non-directory
// members (symlinks, devices) are skipped but still contribute a path so
// extraction accounts for every listed member.
func (r *tarReader) extractOne(dest string, h *tar.Header) (string, error) {
	target, err := memberPath(dest, h.Name)
	if err != nil {
		return "", err
	}

	switch h.Typeflag {
	case tar.TypeDir:
		if err := ensureDir(r.fsys, target); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", target, err)
		}
	case tar.TypeReg:
		if dir := filepath.Dir(target); dir != "" && dir != "." {
			if err := ensureDir(r.fsys, dir); err != nil {
				return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
		if err := writeStream(r.fsys, target, r.tr); err != nil {
			return "", fmt.Errorf("failed to extract %q: %w", h.Name, err)
		}
		if mode := fs.FileMode(h.Mode).Perm(); mode != 0 {
			if err := r.fsys.Chmod(target, mode); err != nil {
				return "", fmt.Errorf("failed to chmod %s: %w", target, err)
			}
		}
	}
	return target, nil
}

func (r *tarReader) Read(name string) ([]byte, error) {
	for {
		h, err := r.tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("%q: %w", name, ErrMemberNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar container: %w", err)
		}
		if h.Name != name {
			continue
		}
		if h.Typeflag != tar.TypeReg {
			return nil, fmt.Errorf("member %q is not a regular file", name)
		}
		data, err := io.ReadAll(r.tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read member %q: %w", name, err)
		}
		return data, nil
	}
}

func (r *tarReader) Close() error {
	var streamErr error
	if r.closeStream != nil {
		streamErr = r.closeStream()
	}
	return errors.Join(streamErr, r.f.Close())
}

type tarWriter struct {
	fsys       afero.Fs
	f          afero.File
	compressor io.WriteCloser
	tw         *tar.Writer
}

// OpenTarWriter creates (or truncates) path as a tar container whose whole
// stream is wrapped in the given outer compression.
func OpenTarWriter(fsys afero.Fs, path string, compression Compression) (Writer, error) {
	f, err := fsys.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	compressor, err := compressStream(f, compression)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &tarWriter{
		fsys:       fsys,
		f:          f,
		compressor: compressor,
		tw:         tar.NewWriter(compressor),
	}, nil
}

func compressStream(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return &nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionBzip2:
		bw, err := bzip2.NewWriter(w, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create bzip2 writer: %w", err)
		}
		return bw, nil
	case CompressionXz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xw, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", compression)
	}
}

func (w *tarWriter) WriteBytes(arcname string, data []byte) error {
	hdr := &tar.Header{
		Name:     arcname,
		Mode:     0644,
		Size:     int64(len(data)),
		ModTime:  time.Now(),
		Typeflag: tar.TypeReg,
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write tar header: %w", err)
	}
	if _, err := w.tw.Write(data); err != nil {
		return fmt.Errorf("failed to write member %q: %w", arcname, err)
	}
	return nil
}

func (w *tarWriter) WriteFile(arcname, src string) error {
	f, err := w.fsys.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	hdr, err := tar.FileInfoHeader(st, "")
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", src, err)
	}
	hdr.Name = arcname

	if err := w.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write tar header: %w", err)
	}
	if _, err := io.Copy(w.tw, f); err != nil {
		return fmt.Errorf("failed to write member %q: %w", arcname, err)
	}
	return nil
}

func (w *tarWriter) Close() error {
	return errors.Join(w.tw.Close(), w.compressor.Close(), w.f.Close())
}

// nopWriteCloser wraps a Writer to provide a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (n *nopWriteCloser) Close() error {
	return nil
}

package codec

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/spf13/afero"
)

type zipReader struct {
	fsys afero.Fs
	f    afero.File
	zr   *zip.Reader
}

// OpenZipReader opens path as a zip container.
func OpenZipReader(fsys afero.Fs, path string) (Reader, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read zip container: %w", err)
	}

	return &zipReader{fsys: fsys, f: f, zr: zr}, nil
}

func (r *zipReader) List() ([]Entry, error) {
	entries := make([]Entry, 0, len(r.zr.File))
	for _, zf := range r.zr.File {
		isDir := zf.FileInfo().IsDir()
		entries = append(entries, Entry{
			Name:           zf.Name,
			Size:           int64(zf.UncompressedSize64),
			CompressedSize: int64(zf.CompressedSize64),
			ModTime:        zf.Modified,
			IsDir:          isDir,
			IsFile:         !isDir,
		})
	}
	return entries, nil
}

func (r *zipReader) Extract(dest string, members []string) ([]string, error) {
	if members == nil {
		paths := make([]string, 0, len(r.zr.File))
		for _, zf := range r.zr.File {
			path, err := r.extractOne(dest, zf)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	paths := make([]string, 0, len(members))
	for _, name := range members {
		zf := r.find(name)
		if zf == nil {
			return nil, fmt.Errorf("%q: %w", name, ErrMemberNotFound)
		}
		path, err := r.extractOne(dest, zf)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *zipReader) extractOne(dest string, zf *zip.File) (string, error) {
	target, err := memberPath(dest, zf.Name)
	if err != nil {
		return "", err
	}

	if zf.FileInfo().IsDir() {
		if err := r.mkdirAll(target); err != nil {
			return "", err
		}
		return target, nil
	}

	if err := r.mkdirAll(filepath.Dir(target)); err != nil {
		return "", err
	}

	rc, err := zf.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open member %q: %w", zf.Name, err)
	}
	defer rc.Close()

	if err := writeStream(r.fsys, target, rc); err != nil {
		return "", fmt.Errorf("failed to extract %q: %w", zf.Name, err)
	}
	return target, nil
}

func (r *zipReader) mkdirAll(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := ensureDir(r.fsys, dir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func (r *zipReader) find(name string) *zip.File {
	for _, zf := range r.zr.File {
		if zf.Name == name {
			return zf
		}
	}
	return nil
}

func (r *zipReader) Read(name string) ([]byte, error) {
	zf := r.find(name)
	if zf == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrMemberNotFound)
	}
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("member %q is not a regular file", name)
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open member %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read member %q: %w", name, err)
	}
	return data, nil
}

func (r *zipReader) Close() error {
	return r.f.Close()
}

type zipWriter struct {
	fsys afero.Fs
	f    afero.File
	zw   *zip.Writer
}

// OpenZipWriter creates (or truncates) path as a zip container. Entries are
// deflate-compressed.
func OpenZipWriter(fsys afero.Fs, path string) (Writer, error) {
	f, err := fsys.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	return &zipWriter{fsys: fsys, f: f, zw: zw}, nil
}

func (w *zipWriter) WriteBytes(arcname string, data []byte) error {
	hdr := &zip.FileHeader{
		Name:     arcname,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	out, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to create member %q: %w", arcname, err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write member %q: %w", arcname, err)
	}
	return nil
}

func (w *zipWriter) WriteFile(arcname, src string) error {
	f, err := w.fsys.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	hdr, err := zip.FileInfoHeader(st)
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", src, err)
	}
	hdr.Name = arcname
	hdr.Method = zip.Deflate

	out, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to create member %q: %w", arcname, err)
	}
	if _, err := io.Copy(out, f); err != nil {
		return fmt.Errorf("failed to write member %q: %w", arcname, err)
	}
	return nil
}

func (w *zipWriter) Close() error {
	return errors.Join(w.zw.Close(), w.f.Close())
}

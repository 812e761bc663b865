package archive

import "fmt"

// CreateZip builds a zip archive at path from the given sources, routing
// files to AddFile and directories to AddDir.
func CreateZip(path string, sources ...string) (*Archive, error) {
	return createFrom(path, FormatZip, sources)
}

// CreateTarGz builds a gzip-compressed tar archive at path from the given
// sources.
func CreateTarGz(path string, sources ...string) (*Archive, error) {
	return createFrom(path, FormatTarGz, sources)
}

func createFrom(path string, format Format, sources []string) (*Archive, error) {
	b := NewBuilder(path, WithFormat(format))
	for _, src := range sources {
		st, err := b.fsys.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", src, err)
		}
		if st.IsDir() {
			b.AddDir(src, "")
		} else {
			b.AddFile(src, "")
		}
	}
	return b.Build()
}

// Extract opens the archive at archivePath and extracts every member into
// dest, defaulting to the current directory when dest is empty.
func Extract(archivePath, dest string) ([]string, error) {
	a, err := Open(archivePath)
	if err != nil {
		return nil, err
	}
	return a.Extract(dest)
}

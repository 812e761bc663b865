package archive

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blackroad/roadarchive/internal/codec"
)

// Format identifies an archive container format. It is resolved once at
// construction and never changes for the lifetime of an Archive or Builder.
type Format string

const (
	FormatZip    Format = "zip"
	FormatTar    Format = "tar"
	FormatTarGz  Format = "tar.gz"
	FormatTarBz2 Format = "tar.bz2"
	FormatTarXz  Format = "tar.xz"
	FormatTarZst Format = "tar.zst"
	FormatGzip   Format = "gz"
)

// formatSuffixes maps file name suffixes to formats, in matching precedence
// order. Compound suffixes come before their plain counterparts so that
// "x.tar.gz" resolves to tar.gz rather than gz.
var formatSuffixes = []struct {
	suffix string
	format Format
}{
	{".zip", FormatZip},
	{".tar.gz", FormatTarGz},
	{".tgz", FormatTarGz},
	{".tar.bz2", FormatTarBz2},
	{".tbz2", FormatTarBz2},
	{".tar.xz", FormatTarXz},
	{".txz", FormatTarXz},
	{".tar.zst", FormatTarZst},
	{".tzst", FormatTarZst},
	{".tar", FormatTar},
	{".gz", FormatGzip},
}

// DetectFormat maps a file name's suffix to its Format. Matching is
// case-insensitive. An unmatched suffix fails with ErrUnknownFormat.
func DetectFormat(name string) (Format, error) {
	base := strings.ToLower(filepath.Base(name))
	for _, candidate := range formatSuffixes {
		if strings.HasSuffix(base, candidate.suffix) {
			return candidate.format, nil
		}
	}
	return "", fmt.Errorf("%s: %w", filepath.Base(name), ErrUnknownFormat)
}

// detectOrDefault is the write-side variant of DetectFormat: same precedence
// but an unmatched suffix falls back to zip instead of failing.
func detectOrDefault(name string) Format {
	format, err := DetectFormat(name)
	if err != nil {
		return FormatZip
	}
	return format
}

type containerKind int

const (
	containerZip containerKind = iota
	containerTar
	containerStream
)

// layout pairs a format with its container kind and outer compression. All
// facade operations branch once on this table.
type layout struct {
	container   containerKind
	compression codec.Compression
}

var layouts = map[Format]layout{
	FormatZip:    {containerZip, codec.CompressionNone},
	FormatTar:    {containerTar, codec.CompressionNone},
	FormatTarGz:  {containerTar, codec.CompressionGzip},
	FormatTarBz2: {containerTar, codec.CompressionBzip2},
	FormatTarXz:  {containerTar, codec.CompressionXz},
	FormatTarZst: {containerTar, codec.CompressionZstd},
	FormatGzip:   {containerStream, codec.CompressionGzip},
}

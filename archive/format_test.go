package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}{
		{name: "zip", path: "bundle.zip", want: FormatZip},
		{name: "tar", path: "bundle.tar", want: FormatTar},
		{name: "tar.gz", path: "bundle.tar.gz", want: FormatTarGz},
		{name: "tgz", path: "bundle.tgz", want: FormatTarGz},
		{name: "tar.bz2", path: "bundle.tar.bz2", want: FormatTarBz2},
		{name: "tbz2", path: "bundle.tbz2", want: FormatTarBz2},
		{name: "tar.xz", path: "bundle.tar.xz", want: FormatTarXz},
		{name: "txz", path: "bundle.txz", want: FormatTarXz},
		{name: "tar.zst", path: "bundle.tar.zst", want: FormatTarZst},
		{name: "tzst", path: "bundle.tzst", want: FormatTarZst},
		{name: "gz", path: "notes.txt.gz", want: FormatGzip},
		{name: "case insensitive", path: "BUNDLE.TAR.GZ", want: FormatTarGz},
		{name: "full path", path: "/tmp/some/dir/bundle.zip", want: FormatZip},
		{name: "rar is unknown", path: "bundle.rar", wantErr: true},
		{name: "no suffix", path: "bundle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_UnknownSuffixFails(t *testing.T) {
	_, err := Open("bundle.rar")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewBuilder_DefaultsToZip(t *testing.T) {
	b := NewBuilder("bundle.rar")
	assert.Equal(t, FormatZip, b.Format(), "write-side detection is permissive")

	b = NewBuilder("bundle.tar.xz")
	assert.Equal(t, FormatTarXz, b.Format())
}

func TestNewBuilder_FormatOverride(t *testing.T) {
	b := NewBuilder("bundle.zip", WithFormat(FormatTarGz))
	assert.Equal(t, FormatTarGz, b.Format())
}

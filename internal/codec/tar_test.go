package codec

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarRoundTrip_Compressions(t *testing.T) {
	compressions := []Compression{
		CompressionNone,
		CompressionGzip,
		CompressionBzip2,
		CompressionXz,
		CompressionZstd,
	}

	for _, compression := range compressions {
		t.Run(string(compression), func(t *testing.T) {
			fsys := afero.NewMemMapFs()

			w, err := OpenTarWriter(fsys, "out.tar", compression)
			require.NoError(t, err)
			require.NoError(t, w.WriteBytes("hello.txt", []byte("hello, world!")))
			require.NoError(t, w.Close())

			r, err := OpenTarReader(fsys, "out.tar", compression)
			require.NoError(t, err)
			defer r.Close()

			data, err := r.Read("hello.txt")
			require.NoError(t, err)
			assert.Equal(t, []byte("hello, world!"), data)
		})
	}
}

func TestOpenTarWriter_UnsupportedCompression(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := OpenTarWriter(fsys, "out.tar", Compression("lz4"))
	require.Error(t, err)
}

func TestTarList_ReportsModeAndSize(t *testing.T) {
	fsys := afero.NewMemMapFs()

	w, err := OpenTarWriter(fsys, "out.tar", CompressionNone)
	require.NoError(t, err)
	require.NoError(t, w.WriteBytes("f.txt", []byte("1234")))
	require.NoError(t, w.Close())

	r, err := OpenTarReader(fsys, "out.tar", CompressionNone)
	require.NoError(t, err)
	defer r.Close()

	entries, err := r.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 4, entries[0].Size)
	assert.EqualValues(t, 0o644, entries[0].Mode)
	assert.True(t, entries[0].IsFile)
	assert.False(t, entries[0].ModTime.IsZero())
}

func TestMemberPath(t *testing.T) {
	tests := []struct {
		name    string
		member  string
		wantErr bool
	}{
		{name: "plain", member: "a.txt"},
		{name: "nested", member: "dir/a.txt"},
		{name: "parent escape", member: "../a.txt", wantErr: true},
		{name: "absolute", member: "/etc/passwd", wantErr: true},
		{name: "hidden escape", member: "dir/../../a.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memberPath("dest", tt.member)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

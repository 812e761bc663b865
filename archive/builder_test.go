package archive

import (
	"testing"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listNames(t *testing.T, a *Archive) []string {
	t.Helper()
	entries, err := a.List()
	require.NoError(t, err)
	return lo.Map(entries, func(e Entry, _ int) string { return e.Name })
}

func TestBuilder_AddFileDefaultsToBaseName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "some/dir/report.txt", []byte("report"), 0o644))

	built, err := NewBuilder("out.zip", WithFs(fsys)).
		AddFile("some/dir/report.txt", "").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"report.txt"}, listNames(t, built))
}

func TestBuilder_AddDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "proj/readme.md", []byte("hi"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "proj/src/main.go", []byte("package main"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "proj/src/deep/util.go", []byte("package deep"), 0o644))
	require.NoError(t, fsys.MkdirAll("proj/empty", 0o755))

	built, err := NewBuilder("out.tar.gz", WithFs(fsys)).
		AddDir("proj", "").
		Build()
	require.NoError(t, err)

	names := listNames(t, built)
	assert.ElementsMatch(t, []string{
		"proj/readme.md",
		"proj/src/main.go",
		"proj/src/deep/util.go",
	}, names)
	assert.NotContains(t, names, "proj/empty", "empty directories are dropped")
}

func TestBuilder_AddDirCustomRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "proj/a.txt", []byte("a"), 0o644))

	built, err := NewBuilder("out.tar", WithFs(fsys)).
		AddDir("proj", "renamed").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"renamed/a.txt"}, listNames(t, built))
}

func TestBuilder_FluentOrderPreserved(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "from-disk.txt", []byte("disk"), 0o644))

	built, err := NewBuilder("out.tar", WithFs(fsys)).
		AddBytes([]byte("c"), "c.txt").
		AddFile("from-disk.txt", "").
		AddBytes([]byte("a"), "a.txt").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"c.txt", "from-disk.txt", "a.txt"}, listNames(t, built))
}

func TestBuilder_MissingSourceFailsAtBuild(t *testing.T) {
	fsys := afero.NewMemMapFs()

	b := NewBuilder("out.zip", WithFs(fsys)).AddFile("vanished.txt", "")

	_, err := b.Build()
	require.Error(t, err, "queueing never validates, building does")
}

func TestBuilder_RebuildOverwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()

	b := NewBuilder("out.zip", WithFs(fsys)).AddBytes([]byte("v1"), "only.txt")

	first, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"only.txt"}, listNames(t, first))

	b.AddBytes([]byte("extra"), "extra.txt")
	second, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"only.txt", "extra.txt"}, listNames(t, second))
}

func TestBuilder_DuplicateArcnamesAllowed(t *testing.T) {
	fsys := afero.NewMemMapFs()

	built, err := NewBuilder("out.tar", WithFs(fsys)).
		AddBytes([]byte("first"), "same.txt").
		AddBytes([]byte("second"), "same.txt").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"same.txt", "same.txt"}, listNames(t, built))
}

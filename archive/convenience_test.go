package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The convenience wrappers run against the host filesystem, so these tests
// use real temp directories rather than an in-memory Fs.

func writeTempTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test1.txt"), []byte("Hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "test2.txt"), []byte("World"), 0o644))
	return dir
}

func TestCreateZip(t *testing.T) {
	dir := writeTempTree(t)
	target := filepath.Join(t.TempDir(), "bundle.zip")

	built, err := CreateZip(target, filepath.Join(dir, "test1.txt"), filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Equal(t, FormatZip, built.Format())

	names := listNames(t, built)
	assert.ElementsMatch(t, []string{"test1.txt", "nested/test2.txt"}, names)
}

func TestCreateTarGz(t *testing.T) {
	dir := writeTempTree(t)
	target := filepath.Join(t.TempDir(), "bundle.tar.gz")

	built, err := CreateTarGz(target, dir)
	require.NoError(t, err)
	assert.Equal(t, FormatTarGz, built.Format())

	base := filepath.Base(dir)
	assert.ElementsMatch(t, []string{
		base + "/test1.txt",
		base + "/nested/test2.txt",
	}, listNames(t, built))
}

func TestCreate_MissingSource(t *testing.T) {
	target := filepath.Join(t.TempDir(), "bundle.zip")

	_, err := CreateZip(target, filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestExtract_OneShot(t *testing.T) {
	dir := writeTempTree(t)
	target := filepath.Join(t.TempDir(), "bundle.tar.gz")

	_, err := CreateTarGz(target, filepath.Join(dir, "test1.txt"))
	require.NoError(t, err)

	dest := t.TempDir()
	paths, err := Extract(target, dest)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	got, err := os.ReadFile(filepath.Join(dest, "test1.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello"), got)
}

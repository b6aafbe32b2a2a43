package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucrtpack/internal/utils"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCopyGlob(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	dstDir := filepath.Join(root, "dst")
	writeFile(t, filepath.Join(srcDir, "b.dll"), "b")
	writeFile(t, filepath.Join(srcDir, "a.dll"), "a")
	writeFile(t, filepath.Join(srcDir, "readme.txt"), "not a dll")

	names, err := utils.CopyGlob(filepath.Join(srcDir, "*.dll"), dstDir, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.dll", "b.dll"}, names)
	assert.FileExists(t, filepath.Join(dstDir, "a.dll"))
	assert.FileExists(t, filepath.Join(dstDir, "b.dll"))
	assert.NoFileExists(t, filepath.Join(dstDir, "readme.txt"))
}

func TestCopyGlob_OverwritesExisting(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	dstDir := filepath.Join(root, "dst")
	writeFile(t, filepath.Join(srcDir, "a.dll"), "new")
	writeFile(t, filepath.Join(dstDir, "a.dll"), "old")

	_, err := utils.CopyGlob(filepath.Join(srcDir, "*.dll"), dstDir, false)

	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dstDir, "a.dll"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestCopyGlob_NoMatches(t *testing.T) {
	root := t.TempDir()

	_, err := utils.CopyGlob(filepath.Join(root, "*.dll"), filepath.Join(root, "dst"), false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestListByExt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "B.DLL"), "b")
	writeFile(t, filepath.Join(dir, "a.dll"), "a")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.dll"), 0755))

	names, err := utils.ListByExt(dir, ".dll")

	require.NoError(t, err)
	assert.Equal(t, []string{"B.DLL", "a.dll"}, names)
}

func TestListByExt_MissingDir(t *testing.T) {
	names, err := utils.ListByExt(filepath.Join(t.TempDir(), "nope"), ".dll")

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEnsureDirAndExists(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")

	assert.False(t, utils.DirExists(dir))
	require.NoError(t, utils.EnsureDir(dir))
	assert.True(t, utils.DirExists(dir))
	require.NoError(t, utils.EnsureDir(dir), "ensuring an existing directory is a no-op")

	file := filepath.Join(dir, "f.txt")
	assert.False(t, utils.FileExists(file))
	writeFile(t, file, "x")
	assert.True(t, utils.FileExists(file))
	assert.False(t, utils.FileExists(dir), "directories are not files")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", utils.FormatBytes(512))
	assert.Equal(t, "1.00 KB", utils.FormatBytes(1024))
	assert.Equal(t, "1.50 MB", utils.FormatBytes(1536*1024))
}

package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucrtpack/internal/utils"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.iso")
	b := filepath.Join(dir, "b.iso")
	require.NoError(t, os.WriteFile(a, []byte("image contents"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("other contents"), 0644))

	sumA1, err := utils.HashFile(a)
	require.NoError(t, err)
	sumA2, err := utils.HashFile(a)
	require.NoError(t, err)
	sumB, err := utils.HashFile(b)
	require.NoError(t, err)

	assert.Len(t, sumA1, 16)
	assert.Equal(t, sumA1, sumA2, "hash must be stable")
	assert.NotEqual(t, sumA1, sumB)
}

func TestHashFile_Missing(t *testing.T) {
	_, err := utils.HashFile(filepath.Join(t.TempDir(), "nope.iso"))

	assert.Error(t, err)
}

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateFile verifies file creation including directories which do not yet exist.
func TestCreateFile(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "nested", "deeper")

	file, err := CreateFile(directory, "out.json")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.True(t, FileExists(filepath.Join(directory, "out.json")))
	assert.True(t, DirExists(directory))
}

// TestFileExists verifies directories and missing paths are not reported as files.
func TestFileExists(t *testing.T) {
	directory := t.TempDir()
	assert.False(t, FileExists(directory))
	assert.False(t, FileExists(filepath.Join(directory, "missing")))

	path := filepath.Join(directory, "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
	assert.False(t, DirExists(path))
}

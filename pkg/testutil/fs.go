package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteFile creates path with content, creating parent directories as needed
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

// ReadFile returns the content of path and fails the test if it cannot be read
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

// AssertFileContent checks that path exists with the expected content
func AssertFileContent(t *testing.T, fs afero.Fs, path, expected string) {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if assert.NoError(t, err, "reading %s", path) {
		assert.Equal(t, expected, string(data), "content of %s", path)
	}
}

// AssertNoFile checks that nothing exists at path
func AssertNoFile(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.False(t, exists, "%s should not exist", path)
}

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDirectory(t *testing.T) {
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "testfile.txt")
	require.NoError(t, os.WriteFile(tempFile, []byte("x"), 0o644))

	tests := []struct {
		name           string
		path           string
		expectedExists bool
		expectedIsDir  bool
	}{
		{"Existing directory", tempDir, true, true},
		{"Existing file", tempFile, true, false},
		{"Non-existent path", filepath.Join(tempDir, "nonexistent"), false, false},
		{"Empty path", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, isDir, err := CheckDirectory(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedExists, exists)
			assert.Equal(t, tt.expectedIsDir, isDir)
		})
	}
}

func TestFileURIToPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths only")
	}

	tests := []struct {
		name    string
		locator string
		path    string
		ok      bool
	}{
		{"plain file uri", "file:///home/u/notes.txt", "/home/u/notes.txt", true},
		{"percent encoded", "file:///home/u/My%20File%20%231.txt", "/home/u/My File #1.txt", true},
		{"localhost host", "file://localhost/tmp/a", "/tmp/a", true},
		{"upper case scheme", "FILE:///tmp/a", "/tmp/a", true},
		{"remote host", "file://server/share/a", "", false},
		{"sftp scheme", "sftp://host/home/u/a.txt", "", false},
		{"trash scheme", "trash:///a.txt", "", false},
		{"bare path", "/home/u/a.txt", "", false},
		{"empty path", "file://", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := FileURIToPath(tt.locator)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestPathToFileURI_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "weird name #1%.txt")

	uri, err := PathToFileURI(original)
	require.NoError(t, err)
	assert.Contains(t, uri, "file://")

	path, ok := FileURIToPath(uri)
	require.True(t, ok)
	assert.Equal(t, original, path)
}

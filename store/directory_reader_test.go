package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestReadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", []byte("Java backend engineer"))
	writeFile(t, dir, "a.txt", []byte("Python developer"))
	writeFile(t, dir, "notes.md", []byte("ignored"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

	docs, skipped, err := NewDirectoryReader(nil, 0).ReadDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].ID)
	assert.Equal(t, "Python developer", docs[0].Content)
	assert.Equal(t, "b.txt", docs[1].ID)
}

func TestReadDirectory_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("one"))
	writeFile(t, dir, "b.md", []byte("two"))

	docs, _, err := NewDirectoryReader([]string{".md"}, 2).ReadDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b.md", docs[0].ID)
}

func TestReadDirectory_InvalidUTF8IsDropped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("pyth\xffon dev\xfe\xfdeloper"))

	docs, _, err := NewDirectoryReader(nil, 1).ReadDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "python developer", docs[0].Content)
}

func TestReadDirectory_EmptyDirectory(t *testing.T) {
	docs, skipped, err := NewDirectoryReader(nil, 1).ReadDirectory(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Equal(t, 0, skipped)
}

func TestReadDirectory_LoadFailures(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing directory", filepath.Join(dir, "does-not-exist")},
		{"path is a file", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewDirectoryReader(nil, 1).ReadDirectory(context.Background(), tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, internalErrors.ErrLoadFailure)

			var loadErr *internalErrors.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.path, loadErr.Directory)
		})
	}
}

func TestReadDirectory_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("Python developer"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewDirectoryReader(nil, 1).ReadDirectory(ctx, dir)
	assert.ErrorIs(t, err, internalErrors.ErrLoadFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

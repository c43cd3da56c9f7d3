package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareOutputCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, PrepareOutput(dir, false))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPrepareOutputEmptyDirOK(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, PrepareOutput(dir, false))
}

func TestPrepareOutputRefusesNonEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.mdx"), []byte("x"), 0644))

	err := PrepareOutput(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")
}

func TestPrepareOutputOverwriteClearsButKeepsLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.mdx"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "old-post"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, LogFileName), []byte("log"), 0644))

	require.NoError(t, PrepareOutput(dir, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, LogFileName, entries[0].Name())
}

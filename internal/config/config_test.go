package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.xml")
	require.NoError(t, os.WriteFile(path, []byte("<rss/>"), 0644))
	return path
}

func TestResolveDefaults(t *testing.T) {
	opts := New()
	opts.ExportPath = writeExport(t)

	require.NoError(t, opts.Resolve())

	assert.True(t, filepath.IsAbs(opts.OutputDir))
	assert.Equal(t, DefaultConcurrency, opts.Concurrency)
	assert.Equal(t, DefaultCanonicalHosts, opts.CanonicalHosts)
	assert.Equal(t, DefaultHeroPath, opts.HeroFallback)
	assert.False(t, opts.Insecure, "TLS verification bypass must be opt-in")
}

func TestResolveRequiresExportFile(t *testing.T) {
	opts := New()
	err := opts.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export file is required")
}

func TestResolveMissingExportFile(t *testing.T) {
	opts := New()
	opts.ExportPath = filepath.Join(t.TempDir(), "nope.xml")
	assert.Error(t, opts.Resolve())
}

func TestResolveRejectsDirectoryExport(t *testing.T) {
	opts := New()
	opts.ExportPath = t.TempDir()
	err := opts.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestResolveNormalizesLimitAndConcurrency(t *testing.T) {
	opts := New()
	opts.ExportPath = writeExport(t)
	opts.Limit = -3
	opts.Concurrency = 0

	require.NoError(t, opts.Resolve())
	assert.Equal(t, 0, opts.Limit)
	assert.Equal(t, DefaultConcurrency, opts.Concurrency)
}

func TestResolveRejectsBadLogLevel(t *testing.T) {
	opts := New()
	opts.ExportPath = writeExport(t)
	opts.LogLevel = "verbose"

	err := opts.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

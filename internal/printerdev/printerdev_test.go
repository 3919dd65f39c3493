package printerdev

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesSpoolDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "spool")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConnect_CreatesFileNamespacedByPrinterAndType(t *testing.T) {
	tr, err := New(t.TempDir())
	require.NoError(t, err)

	f, err := tr.Connect("p1", "ps")
	require.NoError(t, err)
	defer f.Close()

	assert.FileExists(t, f.Name())
	assert.Contains(t, f.Name(), "p1.ps.out")
}

func TestConnect_TruncatesExistingOutput(t *testing.T) {
	tr, err := New(t.TempDir())
	require.NoError(t, err)

	f1, err := tr.Connect("p1", "ps")
	require.NoError(t, err)
	_, err = f1.WriteString("stale content")
	require.NoError(t, err)
	require.NoError(t, f1.Close())

	f2, err := tr.Connect("p1", "ps")
	require.NoError(t, err)
	defer f2.Close()

	data, err := os.ReadFile(f2.Name())
	require.NoError(t, err)
	assert.Empty(t, data)
}

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicFileCommit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	f, err := CreateAtomic(target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(target), filepath.Dir(f.TempPath()))

	_, err = f.WriteString("86400000\n")
	require.NoError(t, err)

	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err), "target must not exist before commit")

	require.NoError(t, f.Commit())
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "86400000\n", string(data))

	_, err = os.Stat(f.TempPath())
	assert.True(t, os.IsNotExist(err))

	f.Abort()
	_, err = os.Stat(target)
	assert.NoError(t, err, "abort after commit must keep the target")
}

func TestAtomicFileAbort(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	f, err := CreateAtomic(target)
	require.NoError(t, err)
	_, err = f.WriteString("partial")
	require.NoError(t, err)
	f.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

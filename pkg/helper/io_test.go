package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "server.key")

	require.NoError(t, os.WriteFile(name, []byte("old"), 0644))
	require.NoError(t, WriteFile(name, []byte("new"), 0600))

	got, err := ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)

	fi, err := os.Stat(name)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}

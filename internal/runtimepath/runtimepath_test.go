package runtimepath

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirPrefersXDGRuntimeDir(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, td, got)
}

func TestDirFallback(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	uid := strconv.Itoa(os.Getuid())

	got, err := Dir()
	require.NoError(t, err)
	assert.Contains(t, []string{
		filepath.Join("/run/user", uid),
		filepath.Join(os.TempDir(), "screenplace-runtime-"+uid),
	}, got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv(SocketEnv, "")

	socket, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(td, "screenplace.sock"), socket)

	t.Setenv(SocketEnv, "/tmp/custom.sock")
	socket, err = SocketPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.sock", socket)
}

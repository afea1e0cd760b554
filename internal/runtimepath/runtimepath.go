// Package runtimepath locates per-user runtime files such as the daemon socket.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const appName = "screenplace"

// SocketEnv overrides the socket location.
const SocketEnv = "SCREENPLACE_SOCKET"

// Dir returns the first usable per-user runtime directory: $XDG_RUNTIME_DIR,
// then /run/user/UID, then a private directory under the system temp dir
// that is created on demand.
func Dir() (string, error) {
	uid := strconv.Itoa(os.Getuid())

	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}
	if dir := filepath.Join("/run/user", uid); isDir(dir) {
		return dir, nil
	}

	dir := filepath.Join(os.TempDir(), appName+"-runtime-"+uid)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create runtime dir: %w", err)
	}
	// MkdirAll leaves an existing directory alone; refuse one we cannot keep private.
	if err := os.Chmod(dir, 0o700); err != nil {
		return "", fmt.Errorf("secure runtime dir: %w", err)
	}
	return dir, nil
}

// SocketPath returns where the daemon listens.
func SocketPath() (string, error) {
	if p := os.Getenv(SocketEnv); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".sock"), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

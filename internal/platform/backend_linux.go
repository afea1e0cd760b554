//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/x11"
)

// LinuxBackend serves a live X server.
type LinuxBackend struct {
	*x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

func openX11(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	conn, err := x11.NewConnection(x11.Options{
		Display:         cfg.Display,
		PerMonitorAware: cfg.DPI.GetPerMonitorAware(),
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{Connection: conn}, nil
}

func (b *LinuxBackend) Name() string { return string(config.BackendX11) }

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() error {
	if b != nil && b.Connection != nil {
		b.Connection.Close()
	}
	return nil
}

// X11 returns the underlying connection for X-specific work such as hotkeys.
func (b *LinuxBackend) X11() *x11.Connection {
	return b.Connection
}

//go:build !linux

package platform

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/1broseidon/screenplace/internal/config"
)

func openX11(*config.Config, *slog.Logger) (Backend, error) {
	return nil, fmt.Errorf("x11 on %s: %w", runtime.GOOS, ErrUnsupported)
}

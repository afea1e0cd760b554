// Package platform selects the display backend and ties it to the monitor
// enumerator and the placement calculator.
package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/placement"
)

var (
	// ErrUnsupported is returned when a backend is not available on this OS.
	ErrUnsupported = errors.New("backend not supported on this platform")
	// ErrNotPlaceable is returned for desktop, dock, splash and notification
	// windows.
	ErrNotPlaceable = errors.New("window cannot be placed")
)

// windowClassifier is implemented by backends that know window types.
type windowClassifier interface {
	IsNormalWindow(w monitor.WindowHandle) bool
}

// Backend abstracts the window system: it answers topology queries, moves
// windows and reports where the user is.
type Backend interface {
	monitor.DisplayQuery
	placement.Mover
	monitor.Locator

	// WindowGeometry returns the frame of w in pixels.
	WindowGeometry(w monitor.WindowHandle) (geometry.Rect, error)
	// Name identifies the backend in logs and output.
	Name() string
	Close() error
}

// Open returns the backend named by cfg.Backend. The auto backend tries X11
// when a display is configured and falls back to the static topology.
func Open(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	switch cfg.Backend {
	case config.BackendStatic:
		return NewStaticBackend(cfg.Static, cfg.DPI.GetPerMonitorAware(), logger), nil
	case config.BackendX11:
		return openX11(cfg, logger)
	case config.BackendAuto, "":
		if cfg.Display == "" && os.Getenv("DISPLAY") == "" {
			logger.Debug("no X display, using static topology")
			return NewStaticBackend(cfg.Static, cfg.DPI.GetPerMonitorAware(), logger), nil
		}
		b, err := openX11(cfg, logger)
		if err != nil {
			logger.Warn("x11 backend unavailable, using static topology", "error", err)
			return NewStaticBackend(cfg.Static, cfg.DPI.GetPerMonitorAware(), logger), nil
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// NewEnumerator builds an enumerator over b. Capabilities are detected once here.
func NewEnumerator(b Backend, cfg *config.Config, logger *slog.Logger) *monitor.Enumerator {
	caps := monitor.DetectCapabilities(b)
	if logger != nil {
		logger.Debug("display capabilities",
			"backend", b.Name(),
			"multi_monitor", caps.MultiMonitor,
			"per_monitor_dpi", caps.PerMonitorDPIAware)
	}
	return monitor.NewEnumerator(b, caps,
		monitor.WithLogger(logger),
		monitor.WithReferenceDPI(cfg.DPI.ReferenceDPI))
}

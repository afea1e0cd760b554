// Package daemon runs the long-lived process: global hotkeys on the X event
// loop and the IPC socket for CLI requests.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/hotkeys"
	"github.com/1broseidon/screenplace/internal/ipc"
	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
	"github.com/1broseidon/screenplace/internal/x11"
)

// ConfigLoader reloads the configuration.
type ConfigLoader func() (*config.Config, error)

// Options configures a Daemon.
type Options struct {
	SocketPath string
	ConfigPath string
	Load       ConfigLoader
	Logger     *slog.Logger
}

// Daemon owns the backend for its lifetime and swaps the session on reload.
type Daemon struct {
	backend platform.Backend
	opts    Options
	logger  *slog.Logger
	started time.Time

	mu        sync.RWMutex
	session   *platform.Session
	bound     int
	placed    int
	keys      *hotkeys.Handler
	x11Events bool
}

// x11Backend is implemented by backends that can run an X event loop.
type x11Backend interface {
	X11() *x11.Connection
}

var _ ipc.Service = (*Daemon)(nil)

// New creates a daemon over an open backend.
func New(cfg *config.Config, backend platform.Backend, opts Options) *Daemon {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Daemon{
		backend: backend,
		opts:    opts,
		logger:  logger,
		session: platform.NewSessionWithBackend(backend, cfg, logger),
	}
}

// Run serves until ctx is cancelled. With an X backend the hotkeys are
// grabbed and the X event loop runs on the calling goroutine.
func (d *Daemon) Run(ctx context.Context) error {
	d.started = time.Now()

	var conn *x11.Connection
	if xb, ok := d.backend.(x11Backend); ok {
		conn = xb.X11()
	}

	if conn != nil {
		d.keys = hotkeys.NewHandler(conn, d, d.logger)
		if err := d.bindHotkeys(); err != nil {
			return err
		}
		d.x11Events = true
	} else {
		d.logger.Warn("backend has no X connection, hotkeys disabled", "backend", d.backend.Name())
	}

	var srv *ipc.Server
	if d.opts.SocketPath != "" {
		srv = ipc.NewServer(d.opts.SocketPath, d, d.logger)
		if err := srv.Start(); err != nil {
			return err
		}
		defer srv.Stop()
	}

	d.logger.Info("daemon started", "backend", d.backend.Name(), "hotkeys", d.bound)

	if conn != nil {
		runLoop(ctx, conn)
	} else {
		<-ctx.Done()
	}

	d.logger.Info("daemon stopped")
	return nil
}

// eventLoop is a blocking loop that Quit unblocks from another goroutine.
type eventLoop interface {
	EventLoop()
	Quit()
}

// runLoop runs loop until ctx is cancelled or the loop ends by itself.
func runLoop(ctx context.Context, loop eventLoop) {
	ended := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			loop.Quit()
		case <-ended:
		}
	}()
	loop.EventLoop()
	close(ended)
}

func (d *Daemon) bindHotkeys() error {
	d.mu.RLock()
	bindings := hotkeys.Bindings(d.session.Config.Hotkeys)
	d.mu.RUnlock()

	if err := d.keys.RegisterAll(bindings); err != nil {
		return fmt.Errorf("failed to register hotkeys: %w", err)
	}

	d.mu.Lock()
	d.bound = len(bindings)
	d.mu.Unlock()
	return nil
}

// ApplyPreset places a window with the current configuration.
func (d *Daemon) ApplyPreset(name string, w monitor.WindowHandle) (platform.Placement, error) {
	d.mu.RLock()
	s := d.session
	d.mu.RUnlock()

	placed, err := s.ApplyPreset(name, w)
	if err != nil {
		return platform.Placement{}, err
	}

	d.mu.Lock()
	d.placed++
	d.mu.Unlock()
	return placed, nil
}

// Monitors describes the current topology.
func (d *Daemon) Monitors() []monitor.Summary {
	d.mu.RLock()
	s := d.session
	d.mu.RUnlock()

	all := s.Monitors.All()
	out := make([]monitor.Summary, len(all))
	for i, m := range all {
		out[i] = m.Summary()
	}
	return out
}

// Status reports daemon counters.
func (d *Daemon) Status() ipc.StatusData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ipc.StatusData{
		Backend:        d.backend.Name(),
		ConfigPath:     d.opts.ConfigPath,
		HotkeysBound:   d.bound,
		PlacementCount: d.placed,
		UptimeSeconds:  int64(time.Since(d.started).Seconds()),
		DaemonRunning:  true,
	}
}

// Reload re-reads the configuration. Presets take effect immediately; the
// hotkey grabs are replaced when running on X.
func (d *Daemon) Reload() error {
	if d.opts.Load == nil {
		return fmt.Errorf("reload not supported")
	}
	cfg, err := d.opts.Load()
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.session = platform.NewSessionWithBackend(d.backend, cfg, d.logger)
	d.mu.Unlock()

	if d.x11Events && d.keys != nil {
		d.keys.DetachAll()
		if err := d.bindHotkeys(); err != nil {
			return err
		}
	}

	d.logger.Info("config reloaded", "presets", len(cfg.Presets))
	return nil
}

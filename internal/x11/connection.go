// Package x11 answers display topology queries and moves windows on an X
// server through RandR, Xinerama and EWMH.
package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/screenplace/internal/logging"
)

// Options configures NewConnection.
type Options struct {
	// Display is the X display name. Empty means $DISPLAY.
	Display string
	// PerMonitorAware makes EffectiveDPI answer; otherwise every monitor
	// is reported at scale 1.
	PerMonitorAware bool
	Logger          *slog.Logger
}

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	randr           bool // RandR >= 1.2
	randrCurrent    bool // RandR >= 1.3, GetScreenResourcesCurrent available
	xinerama        bool
	perMonitorAware bool
	logger          *slog.Logger
}

// NewConnection establishes a connection to the X11 server and probes the
// multi-monitor extensions once.
func NewConnection(opts Options) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", opts.Display, err)
	}

	// Initialize keybind module (required for global hotkeys)
	keybind.Initialize(xu)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Connection{
		XUtil:           xu,
		Root:            xu.RootWin(),
		perMonitorAware: opts.PerMonitorAware,
		logger:          logger,
	}
	c.probeExtensions()
	return c, nil
}

func (c *Connection) probeExtensions() {
	conn := c.XUtil.Conn()

	if err := randr.Init(conn); err != nil {
		c.logger.Debug("randr unavailable", "error", err)
	} else if v, err := randr.QueryVersion(conn, 1, 3).Reply(); err != nil {
		c.logger.Debug("randr version query failed", "error", err)
	} else {
		c.randr = v.MajorVersion > 1 || v.MinorVersion >= 2
		c.randrCurrent = v.MajorVersion > 1 || v.MinorVersion >= 3
	}

	if err := xinerama.Init(conn); err != nil {
		c.logger.Debug("xinerama unavailable", "error", err)
	} else if active, err := xinerama.IsActive(conn).Reply(); err == nil {
		c.xinerama = active.State != 0
	}

	c.logger.Debug("x11 extensions", "randr", c.randr, "randr_1_3", c.randrCurrent, "xinerama", c.xinerama)
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop. The loop only checks its quit flag
// between reads, so a client message is sent to wake it.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
	if err := c.wake(); err != nil {
		c.logger.Warn("failed to wake X event loop", "error", err)
	}
}

// wake queues a ClientMessage for this client. With an empty event mask
// the server delivers a sent event to the creator of the destination
// window, so a private InputOnly window is used as the target.
func (c *Connection) wake() error {
	conn := c.XUtil.Conn()
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}
	err = xproto.CreateWindowChecked(conn, 0, win, c.Root, -1, -1, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, 0, nil).Check()
	if err != nil {
		return fmt.Errorf("create wake window: %w", err)
	}
	defer xproto.DestroyWindow(conn, win)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   xproto.AtomNone,
		Data:   xproto.ClientMessageDataUnionData32New(make([]uint32, 5)),
	}
	return xproto.SendEventChecked(conn, false, win, 0, string(ev.Bytes())).Check()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

package x11

import (
	"errors"
	"fmt"
	"iter"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

var errNoWorkArea = errors.New("_NET_WORKAREA is empty")

var _ monitor.DisplayQuery = (*Connection)(nil)

// MultiMonitorSupported reports whether RandR 1.2 or an active Xinerama was found.
func (c *Connection) MultiMonitorSupported() bool {
	return c.randr || c.xinerama
}

func (c *Connection) PerMonitorDPIAware() bool {
	return c.perMonitorAware
}

// EnumerateMonitors yields the handles of all active heads.
func (c *Connection) EnumerateMonitors() (iter.Seq[monitor.Handle], error) {
	heads, err := c.heads()
	if err != nil {
		return nil, err
	}
	return func(yield func(monitor.Handle) bool) {
		for _, h := range heads {
			if !yield(h.handle) {
				return
			}
		}
	}, nil
}

// MonitorInfo re-reads the head from the server.
func (c *Connection) MonitorInfo(h monitor.Handle) (monitor.Info, error) {
	hd, err := c.findHead(h)
	if err != nil {
		return monitor.Info{}, err
	}
	return monitor.Info{
		Bounds:     hd.bounds,
		WorkArea:   c.workAreaFor(hd.bounds),
		Primary:    hd.primary,
		DeviceName: hd.name,
	}, nil
}

// VirtualScreen returns the root window size.
func (c *Connection) VirtualScreen() (int, int, error) {
	root, err := c.rootGeometry()
	if err != nil {
		return 0, 0, fmt.Errorf("root geometry: %w", err)
	}
	return root.Width, root.Height, nil
}

// WorkArea returns the desktop work area, or the root window when the window
// manager publishes none.
func (c *Connection) WorkArea() (geometry.Rect, error) {
	if wa, err := c.desktopWorkArea(); err == nil && !wa.Empty() {
		return wa, nil
	}
	return c.rootGeometry()
}

func (c *Connection) MonitorFromPoint(p geometry.Point, fallback monitor.Fallback) (monitor.Handle, error) {
	heads, err := c.heads()
	if err != nil {
		return 0, err
	}
	return monitor.ResolvePoint(candidates(heads), p, fallback)
}

// MonitorFromWindow resolves the head sharing the most area with the window
// frame.
func (c *Connection) MonitorFromWindow(w monitor.WindowHandle, fallback monitor.Fallback) (monitor.Handle, error) {
	frame, err := c.WindowGeometry(w)
	if err != nil {
		return 0, err
	}
	heads, err := c.heads()
	if err != nil {
		return 0, err
	}
	return monitor.ResolveRect(candidates(heads), frame, fallback)
}

// WindowGeometry returns the root-relative frame of w including decorations.
func (c *Connection) WindowGeometry(w monitor.WindowHandle) (geometry.Rect, error) {
	frame, err := xwindow.New(c.XUtil, xproto.Window(w)).DecorGeometry()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("%w: %d: %w", monitor.ErrUnknownWindow, w, err)
	}
	return fromXRect(frame), nil
}

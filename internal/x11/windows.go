package x11

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/placement"
)

// States that pin a window in place and must be dropped before a move.
var pinningStates = []string{
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_FULLSCREEN",
}

// MoveResize moves and resizes a window to r in root coordinates.
func (c *Connection) MoveResize(w monitor.WindowHandle, r geometry.Rect) error {
	id := xproto.Window(w)

	if err := c.unpin(id); err != nil {
		c.logger.Debug("could not read window state", "window", uint32(w), "error", err)
	}

	// EWMH first so the window manager accounts for decorations.
	if err := ewmh.MoveresizeWindow(c.XUtil, id, r.X, r.Y, r.Width, r.Height); err != nil {
		c.logger.Debug("ewmh moveresize failed, configuring directly", "window", uint32(w), "error", err)
		win := xwindow.New(c.XUtil, id)
		win.MoveResize(r.X, r.Y, r.Width, r.Height)
	}
	return nil
}

// unpin removes maximized and fullscreen state from a window.
func (c *Connection) unpin(id xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, id)
	if err != nil {
		return err
	}
	for _, state := range states {
		if slices.Contains(pinningStates, state) {
			if err := ewmh.WmStateReq(c.XUtil, id, ewmh.StateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsNormalWindow reports whether w is an application window that may be
// placed. Windows without a readable type count as normal.
func (c *Connection) IsNormalWindow(w monitor.WindowHandle) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, xproto.Window(w))
	if err != nil {
		return true
	}
	return placement.Placeable(types)
}

// ActiveWindow returns the window the window manager reports as focused.
func (c *Connection) ActiveWindow() (monitor.WindowHandle, error) {
	id, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("read _NET_ACTIVE_WINDOW: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("no active window")
	}
	return monitor.WindowHandle(id), nil
}

// PointerPosition returns the pointer in root coordinates.
func (c *Connection) PointerPosition() (geometry.Point, error) {
	p, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("query pointer: %w", err)
	}
	return geometry.Point{X: int(p.RootX), Y: int(p.RootY)}, nil
}

package x11

import (
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/screenplace/internal/geometry"
)

// insets is how far docks push into a monitor from each edge.
type insets struct {
	left, right, top, bottom int
}

func (in insets) zero() bool {
	return in.left == 0 && in.right == 0 && in.top == 0 && in.bottom == 0
}

// apply shrinks r by the insets, keeping at least one pixel.
func (in insets) apply(r geometry.Rect) geometry.Rect {
	r.X += in.left
	r.Y += in.top
	r.Width = max(1, r.Width-in.left-in.right)
	r.Height = max(1, r.Height-in.top-in.bottom)
	return r
}

// workAreaFor returns the part of bounds not reserved by docks and panels.
// Dock struts are preferred since they are per-monitor; _NET_WORKAREA spans
// the whole desktop and is only intersected with the monitor.
func (c *Connection) workAreaFor(bounds geometry.Rect) geometry.Rect {
	root, err := c.rootGeometry()
	if err != nil {
		return bounds
	}

	if struts := c.dockStruts(root); len(struts) > 0 {
		if in := strutInsets(bounds, root, struts); !in.zero() {
			return in.apply(bounds)
		}
	}

	if wa, err := c.desktopWorkArea(); err == nil {
		if clipped := bounds.Intersect(wa); !clipped.Empty() {
			return clipped
		}
	}
	return bounds
}

func (c *Connection) rootGeometry() (geometry.Rect, error) {
	g, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{Width: int(g.Width), Height: int(g.Height)}, nil
}

// desktopWorkArea returns _NET_WORKAREA for the current desktop.
func (c *Connection) desktopWorkArea() (geometry.Rect, error) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil {
		return geometry.Rect{}, err
	}
	if len(areas) == 0 {
		return geometry.Rect{}, errNoWorkArea
	}

	idx := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(areas) {
		idx = int(desktop)
	}
	wa := areas[idx]
	return geometry.Rect{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)}, nil
}

// dockStruts collects the partial struts of every dock window. Docks that
// only set _NET_WM_STRUT are widened to span the whole root edge.
func (c *Connection) dockStruts(root geometry.Rect) []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}

	var out []ewmh.WmStrutPartial
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil || !slices.Contains(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			out = append(out, *sp)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			out = append(out, fullEdgeStrut(s, root))
		}
	}
	return out
}

func fullEdgeStrut(s *ewmh.WmStrut, root geometry.Rect) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:       s.Left,
		Right:      s.Right,
		Top:        s.Top,
		Bottom:     s.Bottom,
		LeftEndY:   uint(max(0, root.Height-1)),
		RightEndY:  uint(max(0, root.Height-1)),
		TopEndX:    uint(max(0, root.Width-1)),
		BottomEndX: uint(max(0, root.Width-1)),
	}
}

// strutInsets computes how far the struts reach into bounds. Struts are
// measured from the root window edges, so a dock on an inner edge of a
// multi-monitor layout only affects the monitor it overlaps.
func strutInsets(bounds, root geometry.Rect, struts []ewmh.WmStrutPartial) insets {
	var in insets
	for _, sp := range struts {
		if sp.Top > 0 {
			band := geometry.Rect{
				X: int(sp.TopStartX), Y: 0,
				Width: int(sp.TopEndX) - int(sp.TopStartX) + 1, Height: int(sp.Top),
			}
			in.top = max(in.top, bounds.Intersect(band).Height)
		}
		if sp.Bottom > 0 {
			band := geometry.Rect{
				X: int(sp.BottomStartX), Y: root.Height - int(sp.Bottom),
				Width: int(sp.BottomEndX) - int(sp.BottomStartX) + 1, Height: int(sp.Bottom),
			}
			in.bottom = max(in.bottom, bounds.Intersect(band).Height)
		}
		if sp.Left > 0 {
			band := geometry.Rect{
				X: 0, Y: int(sp.LeftStartY),
				Width: int(sp.Left), Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1,
			}
			in.left = max(in.left, bounds.Intersect(band).Width)
		}
		if sp.Right > 0 {
			band := geometry.Rect{
				X: root.Width - int(sp.Right), Y: int(sp.RightStartY),
				Width: int(sp.Right), Height: int(sp.RightEndY) - int(sp.RightStartY) + 1,
			}
			in.right = max(in.right, bounds.Intersect(band).Width)
		}
	}
	return in
}

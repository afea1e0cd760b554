// Package placement computes window rectangles for named anchors on a monitor.
package placement

import (
	"fmt"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

// Place returns the rectangle for a window of the given size anchored inside
// bounds. The size is kept for every anchor except AnchorMaximize. The result
// may extend past bounds; use Clamp to pull it back in.
func Place(anchor Anchor, bounds geometry.LogicalRect, size geometry.Size) (geometry.LogicalRect, error) {
	spareW := bounds.Width - size.Width
	spareH := bounds.Height - size.Height

	var x, y float64
	switch anchor {
	case AnchorCenter:
		x, y = bounds.X+spareW/2, bounds.Y+spareH/2
	case AnchorLeft:
		x, y = bounds.X, bounds.Y+spareH/2
	case AnchorRight:
		x, y = bounds.X+spareW, bounds.Y+spareH/2
	case AnchorTop:
		x, y = bounds.X+spareW/2, bounds.Y
	case AnchorBottom:
		x, y = bounds.X+spareW/2, bounds.Y+spareH
	case AnchorTopLeft:
		x, y = bounds.X, bounds.Y
	case AnchorTopRight:
		x, y = bounds.X+spareW, bounds.Y
	case AnchorBottomLeft:
		x, y = bounds.X, bounds.Y+spareH
	case AnchorBottomRight:
		x, y = bounds.X+spareW, bounds.Y+spareH
	case AnchorMaximize:
		return bounds, nil
	default:
		return geometry.LogicalRect{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, anchor)
	}

	return geometry.LogicalRect{X: x, Y: y, Width: size.Width, Height: size.Height}, nil
}

// Clamp pulls r inside bounds: oversized dimensions shrink to fit, then the
// rectangle is shifted only as far as needed to stop it crossing an edge.
func Clamp(r, bounds geometry.LogicalRect) geometry.LogicalRect {
	if r.Width > bounds.Width {
		r.Width = bounds.Width
	}
	if r.Height > bounds.Height {
		r.Height = bounds.Height
	}

	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	if r.Right() > bounds.Right() {
		r.X = bounds.Right() - r.Width
	}
	if r.Bottom() > bounds.Bottom() {
		r.Y = bounds.Bottom() - r.Height
	}

	return r
}

// Request describes a placement on a monitor.
type Request struct {
	Anchor Anchor
	Size   geometry.Size
	// Clamp keeps the result inside the target bounds.
	Clamp bool
	// UseWorkArea targets the working area instead of the full monitor bounds.
	UseWorkArea bool
}

// Target returns the logical rectangle a request is placed within.
func (r Request) Target(m monitor.Monitor) geometry.LogicalRect {
	if r.UseWorkArea {
		return m.LogicalWorkingArea()
	}
	return m.LogicalBounds()
}

// PlaceOn computes the logical placement for req on monitor m.
func PlaceOn(m monitor.Monitor, req Request) (geometry.LogicalRect, error) {
	target := req.Target(m)

	rect, err := Place(req.Anchor, target, req.Size)
	if err != nil {
		return geometry.LogicalRect{}, err
	}
	if req.Clamp {
		rect = Clamp(rect, target)
	}
	return rect, nil
}

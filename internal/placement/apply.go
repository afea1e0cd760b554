package placement

import (
	"fmt"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

// Mover moves and resizes a window to a rectangle in physical pixels.
type Mover interface {
	MoveResize(w monitor.WindowHandle, bounds geometry.Rect) error
}

// Apply places window w on monitor m and hands the pixel rectangle to mover.
// It returns the rectangle that was requested.
func Apply(mover Mover, w monitor.WindowHandle, m monitor.Monitor, req Request) (geometry.Rect, error) {
	rect, err := PlaceOn(m, req)
	if err != nil {
		return geometry.Rect{}, err
	}

	px := PixelRect(m, rect)
	if err := mover.MoveResize(w, px); err != nil {
		return geometry.Rect{}, fmt.Errorf("move window %d to %s: %w", w, px, err)
	}
	return px, nil
}

// PixelRect converts a logical placement on m to pixels. Windows are never
// smaller than one pixel in either dimension.
func PixelRect(m monitor.Monitor, rect geometry.LogicalRect) geometry.Rect {
	px := geometry.ToPixel(rect, m.ScaleFactor())
	px.Width = max(px.Width, 1)
	px.Height = max(px.Height, 1)
	return px
}

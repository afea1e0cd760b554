package geometry

import "math"

// ReferenceDPI is the DPI at which one logical unit equals one pixel.
const ReferenceDPI = 96

// ScaleForDPI converts an effective DPI into a scale factor.
// Non-positive DPI values yield 1.
func ScaleForDPI(dpi int) float64 {
	if dpi <= 0 {
		return 1
	}
	return float64(dpi) / ReferenceDPI
}

// NormalizeScale maps unusable scale factors (non-positive, NaN, Inf) to 1.
func NormalizeScale(scale float64) float64 {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 1
	}
	return scale
}

// ToLogical converts a pixel rectangle into logical units.
// A scale of exactly 1 copies the components without any division.
func ToLogical(r Rect, scale float64) LogicalRect {
	scale = NormalizeScale(scale)
	if scale == 1 {
		return LogicalRect{
			X:      float64(r.X),
			Y:      float64(r.Y),
			Width:  float64(r.Width),
			Height: float64(r.Height),
		}
	}
	return LogicalRect{
		X:      float64(r.X) / scale,
		Y:      float64(r.Y) / scale,
		Width:  float64(r.Width) / scale,
		Height: float64(r.Height) / scale,
	}
}

// ToPixel converts a logical rectangle back to pixels, rounding each
// component to the nearest pixel.
func ToPixel(r LogicalRect, scale float64) Rect {
	scale = NormalizeScale(scale)
	return Rect{
		X:      roundPixel(r.X * scale),
		Y:      roundPixel(r.Y * scale),
		Width:  roundPixel(r.Width * scale),
		Height: roundPixel(r.Height * scale),
	}
}

// PointToLogical converts a pixel point into logical units.
func PointToLogical(p Point, scale float64) LogicalPoint {
	scale = NormalizeScale(scale)
	if scale == 1 {
		return LogicalPoint{X: float64(p.X), Y: float64(p.Y)}
	}
	return LogicalPoint{X: float64(p.X) / scale, Y: float64(p.Y) / scale}
}

// PointToPixel converts a logical point to the nearest pixel.
func PointToPixel(p LogicalPoint, scale float64) Point {
	scale = NormalizeScale(scale)
	return Point{X: roundPixel(p.X * scale), Y: roundPixel(p.Y * scale)}
}

func roundPixel(v float64) int {
	return int(math.Round(v))
}

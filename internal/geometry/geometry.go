// Package geometry holds the pixel and logical rectangle types shared by the
// monitor topology, the placement calculator and the native backends.
package geometry

import "fmt"

// Point is a position in physical pixels on the virtual desktop.
// Coordinates can be negative when a monitor sits left of or above the primary.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// LogicalPoint is a position in DPI-independent units.
type LogicalPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is a rectangle in physical pixels.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// LogicalRect is a rectangle in DPI-independent units.
type LogicalRect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Size is a requested window size in logical units.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the number of pixels covered, 0 for empty rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersect returns the overlap of r and o, or the zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())

	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Union returns the smallest rectangle covering r and o. An empty operand is
// ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	x1, y1 := min(r.X, o.X), min(r.Y, o.Y)
	x2, y2 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// DistanceSquared returns the squared distance from p to the closest pixel of r.
// It is 0 when r contains p.
func (r Rect) DistanceSquared(p Point) int {
	dx := 0
	switch {
	case p.X < r.X:
		dx = r.X - p.X
	case p.X >= r.Right():
		dx = p.X - (r.Right() - 1)
	}

	dy := 0
	switch {
	case p.Y < r.Y:
		dy = r.Y - p.Y
	case p.Y >= r.Bottom():
		dy = p.Y - (r.Bottom() - 1)
	}

	return dx*dx + dy*dy
}

// Center returns the pixel at the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func (r LogicalRect) Right() float64  { return r.X + r.Width }
func (r LogicalRect) Bottom() float64 { return r.Y + r.Height }

// Empty reports whether the rectangle has no area.
func (r LogicalRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r LogicalRect) Contains(p LogicalPoint) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func (r LogicalRect) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", r.Width, r.Height, r.X, r.Y)
}

// Nearest returns the index of the rectangle closest to p, preferring one that
// contains it. Ties keep the earliest index. It returns -1 for an empty slice.
func Nearest(rects []Rect, p Point) int {
	best := -1
	bestDist := 0
	for i, r := range rects {
		if r.Empty() {
			continue
		}
		d := r.DistanceSquared(p)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
		if d == 0 {
			break
		}
	}
	return best
}

// LargestOverlap returns the index of the rectangle sharing the most area with
// target, or -1 when none overlaps it.
func LargestOverlap(rects []Rect, target Rect) int {
	best := -1
	bestArea := 0
	for i, r := range rects {
		area := r.Intersect(target).Area()
		if area > bestArea {
			best = i
			bestArea = area
		}
	}
	return best
}

package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLogicalIdentityAtScaleOne(t *testing.T) {
	r := Rect{X: -1920, Y: 7, Width: 1921, Height: 1081}
	got := ToLogical(r, 1.0)
	assert.Equal(t, LogicalRect{X: -1920, Y: 7, Width: 1921, Height: 1081}, got)
}

func TestToLogicalDividesComponents(t *testing.T) {
	got := ToLogical(Rect{X: 3840, Y: 0, Width: 2560, Height: 1440}, 2.0)
	assert.Equal(t, LogicalRect{X: 1920, Y: 0, Width: 1280, Height: 720}, got)
}

func TestRoundTripPixelLogical(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: -1280, Y: -200, Width: 1280, Height: 1024},
		{X: 2561, Y: 13, Width: 777, Height: 333},
		{X: 1, Y: 1, Width: 1, Height: 1},
	}
	scales := []float64{1.0, 1.25, 1.5, 2.0}

	for _, s := range scales {
		for _, r := range rects {
			got := ToPixel(ToLogical(r, s), s)
			assert.Equalf(t, r, got, "scale %.2f", s)
		}
	}
}

func TestPointRoundTrip(t *testing.T) {
	for _, s := range []float64{1.0, 1.25, 1.5, 2.0} {
		p := Point{X: -333, Y: 1079}
		assert.Equal(t, p, PointToPixel(PointToLogical(p, s), s))
	}
}

func TestNormalizeScale(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 1},
		{-2, 1},
		{math.NaN(), 1},
		{math.Inf(1), 1},
		{1.5, 1.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeScale(tt.in))
	}
}

func TestScaleForDPI(t *testing.T) {
	assert.Equal(t, 1.0, ScaleForDPI(96))
	assert.Equal(t, 1.25, ScaleForDPI(120))
	assert.Equal(t, 2.0, ScaleForDPI(192))
	assert.Equal(t, 1.0, ScaleForDPI(0))
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 80, Width: 100, Height: 100}
	assert.Equal(t, Rect{X: 50, Y: 80, Width: 50, Height: 20}, a.Intersect(b))

	c := Rect{X: 100, Y: 0, Width: 10, Height: 10}
	assert.True(t, a.Intersect(c).Empty(), "touching edges do not overlap")
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	b := Rect{X: 1920, Y: -200, Width: 2560, Height: 1440}
	assert.Equal(t, Rect{X: 0, Y: -200, Width: 4480, Height: 1440}, a.Union(b))
	assert.Equal(t, a, Rect{}.Union(a))
	assert.Equal(t, a, a.Union(Rect{}))
}

func TestDistanceSquared(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.Equal(t, 0, r.DistanceSquared(Point{X: 5, Y: 5}))
	assert.Equal(t, 1, r.DistanceSquared(Point{X: 10, Y: 5}))
	assert.Equal(t, 25, r.DistanceSquared(Point{X: -3, Y: -4}))
}

func TestNearest(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1280, Height: 1024},
	}

	assert.Equal(t, 1, Nearest(rects, Point{X: 2000, Y: 10}))
	assert.Equal(t, 1, Nearest(rects, Point{X: 2000, Y: 1050}), "below the right monitor")
	assert.Equal(t, 0, Nearest(rects, Point{X: -50, Y: 500}))
	assert.Equal(t, -1, Nearest(nil, Point{}))
}

func TestLargestOverlap(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
	}

	win := Rect{X: 1800, Y: 100, Width: 400, Height: 300}
	require.Equal(t, 1, LargestOverlap(rects, win))

	offscreen := Rect{X: 5000, Y: 5000, Width: 10, Height: 10}
	assert.Equal(t, -1, LargestOverlap(rects, offscreen))
}

func TestLogicalRectContains(t *testing.T) {
	r := LogicalRect{X: 1536, Y: 0, Width: 1536, Height: 864}
	assert.True(t, r.Contains(LogicalPoint{X: 1536, Y: 0}))
	assert.False(t, r.Contains(LogicalPoint{X: 3072, Y: 10}))
}

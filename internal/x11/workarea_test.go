package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/stretchr/testify/assert"

	"github.com/1broseidon/screenplace/internal/geometry"
)

func TestStrutInsetsOnlyAffectOverlappedMonitor(t *testing.T) {
	root := geometry.Rect{Width: 4480, Height: 1440}
	left := geometry.Rect{Width: 1920, Height: 1080}
	right := geometry.Rect{X: 1920, Width: 2560, Height: 1440}

	// Top panel spanning only the left monitor.
	panel := ewmh.WmStrutPartial{Top: 32, TopStartX: 0, TopEndX: 1919}

	in := strutInsets(left, root, []ewmh.WmStrutPartial{panel})
	assert.Equal(t, insets{top: 32}, in)
	assert.Equal(t, geometry.Rect{Y: 32, Width: 1920, Height: 1048}, in.apply(left))

	assert.True(t, strutInsets(right, root, []ewmh.WmStrutPartial{panel}).zero())
}

func TestStrutInsetsBottomMeasuredFromRoot(t *testing.T) {
	root := geometry.Rect{Width: 4480, Height: 1440}
	left := geometry.Rect{Width: 1920, Height: 1080}
	right := geometry.Rect{X: 1920, Width: 2560, Height: 1440}

	// Bottom dock on the taller right monitor. The strut counts from the
	// root's bottom edge, which the shorter left monitor never reaches.
	dock := ewmh.WmStrutPartial{Bottom: 48, BottomStartX: 1920, BottomEndX: 4479}

	assert.Equal(t, insets{bottom: 48}, strutInsets(right, root, []ewmh.WmStrutPartial{dock}))
	assert.True(t, strutInsets(left, root, []ewmh.WmStrutPartial{dock}).zero())
}

func TestStrutInsetsTakeLargestPerEdge(t *testing.T) {
	root := geometry.Rect{Width: 1920, Height: 1080}
	struts := []ewmh.WmStrutPartial{
		fullEdgeStrut(&ewmh.WmStrut{Left: 40}, root),
		fullEdgeStrut(&ewmh.WmStrut{Left: 64, Right: 10}, root),
	}

	in := strutInsets(root, root, struts)
	assert.Equal(t, insets{left: 64, right: 10}, in)
	assert.Equal(t, geometry.Rect{X: 64, Width: 1846, Height: 1080}, in.apply(root))
}

func TestInsetsApplyKeepsOnePixel(t *testing.T) {
	r := insets{left: 600, right: 600}.apply(geometry.Rect{Width: 1000, Height: 10})
	assert.Equal(t, 1, r.Width)
}

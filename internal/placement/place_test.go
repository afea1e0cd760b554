package placement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

func TestPlaceAnchors(t *testing.T) {
	bounds := geometry.LogicalRect{X: 100, Y: 50, Width: 1000, Height: 800}
	size := geometry.Size{Width: 400, Height: 300}

	tests := []struct {
		anchor Anchor
		x, y   float64
	}{
		{AnchorCenter, 400, 300},
		{AnchorLeft, 100, 300},
		{AnchorRight, 700, 300},
		{AnchorTop, 400, 50},
		{AnchorBottom, 400, 550},
		{AnchorTopLeft, 100, 50},
		{AnchorTopRight, 700, 50},
		{AnchorBottomLeft, 100, 550},
		{AnchorBottomRight, 700, 550},
	}
	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			got, err := Place(tt.anchor, bounds, size)
			require.NoError(t, err)
			assert.Equal(t, geometry.LogicalRect{X: tt.x, Y: tt.y, Width: 400, Height: 300}, got)
		})
	}
}

func TestPlaceCenter(t *testing.T) {
	got, err := Place(AnchorCenter, geometry.LogicalRect{Width: 1000, Height: 800}, geometry.Size{Width: 400, Height: 300})
	require.NoError(t, err)
	assert.Equal(t, geometry.LogicalRect{X: 300, Y: 250, Width: 400, Height: 300}, got)
}

func TestPlaceTopRight(t *testing.T) {
	got, err := Place(AnchorTopRight, geometry.LogicalRect{Width: 1920, Height: 1080}, geometry.Size{Width: 600, Height: 400})
	require.NoError(t, err)
	assert.Equal(t, geometry.LogicalRect{X: 1320, Y: 0, Width: 600, Height: 400}, got)
}

func TestPlaceMaximizeIgnoresRequestedSize(t *testing.T) {
	got, err := Place(AnchorMaximize, geometry.LogicalRect{Width: 1920, Height: 1080}, geometry.Size{Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, geometry.LogicalRect{X: 0, Y: 0, Width: 1920, Height: 1080}, got)
}

func TestPlaceInvalidAnchor(t *testing.T) {
	got, err := Place(Anchor("diagonal"), geometry.LogicalRect{Width: 10, Height: 10}, geometry.Size{Width: 1, Height: 1})
	assert.True(t, errors.Is(err, ErrInvalidAnchor))
	assert.True(t, got.Empty())
}

func TestClampShrinksAndPullsBack(t *testing.T) {
	bounds := geometry.LogicalRect{Width: 100, Height: 100}

	raw, err := Place(AnchorBottomRight, bounds, geometry.Size{Width: 200, Height: 50})
	require.NoError(t, err)
	assert.Equal(t, -100.0, raw.X)

	got := Clamp(raw, bounds)
	assert.Equal(t, geometry.LogicalRect{X: 0, Y: 50, Width: 100, Height: 50}, got)
}

func TestClampLeavesFittingRectAlone(t *testing.T) {
	bounds := geometry.LogicalRect{X: -1280, Y: 0, Width: 1280, Height: 1024}
	r := geometry.LogicalRect{X: -1000, Y: 10, Width: 300, Height: 300}
	assert.Equal(t, r, Clamp(r, bounds))
}

func TestClampPullsRightAndBottomEdgesIn(t *testing.T) {
	bounds := geometry.LogicalRect{Width: 100, Height: 100}
	r := geometry.LogicalRect{X: 80, Y: 90, Width: 50, Height: 20}
	assert.Equal(t, geometry.LogicalRect{X: 50, Y: 80, Width: 50, Height: 20}, Clamp(r, bounds))
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
	}{
		{"center", AnchorCenter},
		{"TopRight", AnchorTopRight},
		{"top_right", AnchorTopRight},
		{" bottom-left ", AnchorBottomLeft},
		{"MAXIMIZE", AnchorMaximize},
	}
	for _, tt := range tests {
		got, err := ParseAnchor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, in := range []string{"north-by-northwest", "middle", "centre", ""} {
		_, err := ParseAnchor(in)
		assert.ErrorIs(t, err, ErrInvalidAnchor, in)
	}
}

func TestAnchorValid(t *testing.T) {
	for _, a := range Anchors() {
		assert.True(t, a.Valid(), a)
	}
	assert.False(t, Anchor("middle").Valid())
	assert.False(t, Anchor("Top-Left").Valid(), "Valid does not normalise")
}

func scaledTopology() *monitor.Enumerator {
	q := &monitor.StaticQuery{
		MultiMonitor:    true,
		PerMonitorAware: true,
		Monitors: []monitor.StaticMonitor{
			{
				Handle: 1,
				Info: monitor.Info{
					Bounds:     geometry.Rect{X: 0, Y: 0, Width: 2560, Height: 1440},
					WorkArea:   geometry.Rect{X: 0, Y: 40, Width: 2560, Height: 1400},
					Primary:    true,
					DeviceName: "eDP-1",
				},
				DPI: 192,
			},
		},
		VirtualWidth:  2560,
		VirtualHeight: 1440,
	}
	return monitor.NewEnumerator(q, monitor.DetectCapabilities(q))
}

func TestPlaceOnUsesLogicalBounds(t *testing.T) {
	m, err := scaledTopology().Primary()
	require.NoError(t, err)

	got, err := PlaceOn(m, Request{Anchor: AnchorCenter, Size: geometry.Size{Width: 400, Height: 300}})
	require.NoError(t, err)
	assert.Equal(t, geometry.LogicalRect{X: 440, Y: 210, Width: 400, Height: 300}, got)

	got, err = PlaceOn(m, Request{Anchor: AnchorMaximize, UseWorkArea: true})
	require.NoError(t, err)
	assert.Equal(t, geometry.LogicalRect{X: 0, Y: 20, Width: 1280, Height: 700}, got)
}

type recordingMover struct {
	window monitor.WindowHandle
	bounds geometry.Rect
	err    error
}

func (r *recordingMover) MoveResize(w monitor.WindowHandle, b geometry.Rect) error {
	r.window, r.bounds = w, b
	return r.err
}

func TestApplyConvertsToPixels(t *testing.T) {
	m, err := scaledTopology().Primary()
	require.NoError(t, err)

	mover := &recordingMover{}
	px, err := Apply(mover, 7, m, Request{Anchor: AnchorTopRight, Size: geometry.Size{Width: 600, Height: 400}})
	require.NoError(t, err)

	want := geometry.Rect{X: 1360, Y: 0, Width: 1200, Height: 800}
	assert.Equal(t, want, px)
	assert.Equal(t, monitor.WindowHandle(7), mover.window)
	assert.Equal(t, want, mover.bounds)
}

func TestApplyPropagatesMoverError(t *testing.T) {
	m, err := scaledTopology().Primary()
	require.NoError(t, err)

	mover := &recordingMover{err: errors.New("BadWindow")}
	_, err = Apply(mover, 7, m, Request{Anchor: AnchorCenter, Size: geometry.Size{Width: 10, Height: 10}})
	assert.ErrorContains(t, err, "BadWindow")
}

func TestApplyRejectsInvalidAnchorBeforeMoving(t *testing.T) {
	m, err := scaledTopology().Primary()
	require.NoError(t, err)

	mover := &recordingMover{}
	_, err = Apply(mover, 7, m, Request{Anchor: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidAnchor)
	assert.Zero(t, mover.window)
}

func TestPlaceable(t *testing.T) {
	tests := []struct {
		types []string
		want  bool
	}{
		{nil, true},
		{[]string{"_NET_WM_WINDOW_TYPE_NORMAL"}, true},
		{[]string{"_NET_WM_WINDOW_TYPE_DIALOG"}, true},
		{[]string{"_NET_WM_WINDOW_TYPE_DOCK"}, false},
		{[]string{"_NET_WM_WINDOW_TYPE_DESKTOP"}, false},
		{[]string{"notification"}, false},
		{[]string{" Splash "}, false},
		{[]string{"_KDE_NET_WM_WINDOW_TYPE_OVERRIDE", "_NET_WM_WINDOW_TYPE_NORMAL"}, true},
		{[]string{"_KDE_NET_WM_WINDOW_TYPE_OVERRIDE", "_NET_WM_WINDOW_TYPE_DOCK"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Placeable(tt.types), "%v", tt.types)
	}
}

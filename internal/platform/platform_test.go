package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/placement"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendStatic
	cfg.Static = config.StaticTopology{
		Monitors: []config.StaticMonitor{
			{
				Name:     "DP-1",
				Bounds:   geometry.Rect{Width: 1920, Height: 1080},
				WorkArea: geometry.Rect{Width: 1920, Height: 1040},
				Primary:  true,
				DPI:      96,
			},
			{
				Name:   "HDMI-1",
				Bounds: geometry.Rect{X: 1920, Width: 2560, Height: 1440},
				DPI:    144,
			},
		},
		Windows: map[uint32]geometry.Rect{
			7: {X: 1800, Y: 100, Width: 400, Height: 300},
			8: {X: 100, Y: 100, Width: 400, Height: 300},
		},
		ActiveWindow: 8,
	}
	return cfg
}

func newTestSession(t *testing.T) (*Session, *StaticBackend) {
	t.Helper()
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	b, err := Open(cfg, nil)
	require.NoError(t, err)
	sb, ok := b.(*StaticBackend)
	require.True(t, ok, "expected static backend, got %T", b)
	return NewSessionWithBackend(b, cfg, nil), sb
}

func TestStaticBackendTopology(t *testing.T) {
	b := NewStaticBackend(testConfig().Static, true, nil)

	w, h, err := b.VirtualScreen()
	require.NoError(t, err)
	assert.Equal(t, 4480, w)
	assert.Equal(t, 1440, h)

	work, err := b.WorkArea()
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{Width: 4480, Height: 1440}, work)

	info, err := b.MonitorInfo(2)
	require.NoError(t, err)
	assert.Equal(t, "HDMI-1", info.DeviceName)
	assert.Equal(t, info.Bounds, info.WorkArea, "missing work area defaults to bounds")

	p, err := b.PointerPosition()
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 960, Y: 540}, p)
}

func TestStaticBackendRecordsMoves(t *testing.T) {
	b := NewStaticBackend(testConfig().Static, true, nil)

	target := geometry.Rect{X: 2000, Y: 10, Width: 500, Height: 500}
	require.NoError(t, b.MoveResize(8, target))

	assert.Equal(t, []Move{{Window: 8, Bounds: target}}, b.Moves())
	got, err := b.WindowGeometry(8)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	h, err := b.MonitorFromWindow(8, monitor.FallbackNone)
	require.NoError(t, err)
	assert.Equal(t, monitor.Handle(2), h)

	_, err = b.WindowGeometry(99)
	assert.ErrorIs(t, err, monitor.ErrUnknownWindow)
}

func TestStaticBackendWithoutActiveWindow(t *testing.T) {
	topo := testConfig().Static
	topo.ActiveWindow = 0
	b := NewStaticBackend(topo, true, nil)

	_, err := b.ActiveWindow()
	assert.Error(t, err)

	b.SetActiveWindow(7)
	w, err := b.ActiveWindow()
	require.NoError(t, err)
	assert.Equal(t, monitor.WindowHandle(7), w)
}

func TestOpenAutoWithoutDisplayUsesStatic(t *testing.T) {
	t.Setenv("DISPLAY", "")
	cfg := testConfig()
	cfg.Backend = config.BackendAuto

	b, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "static", b.Name())
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Backend = "wayland"

	_, err := Open(cfg, nil)
	assert.Error(t, err)
}

func TestSessionApplyPresetOnScaledMonitor(t *testing.T) {
	s, b := newTestSession(t)

	got, err := s.ApplyPreset("left-half", 7)
	require.NoError(t, err)

	want := geometry.Rect{X: 1920, Y: 0, Width: 1280, Height: 1440}
	assert.True(t, got.Applied)
	assert.Equal(t, monitor.WindowHandle(7), got.Window)
	assert.Equal(t, "HDMI-1", got.Monitor.DeviceName)
	assert.Equal(t, placement.AnchorLeft, got.Anchor)
	assert.Equal(t, want, got.Pixels)
	assert.Equal(t, []Move{{Window: 7, Bounds: want}}, b.Moves())
}

func TestSessionApplyDefaultsToActiveWindow(t *testing.T) {
	s, b := newTestSession(t)

	got, err := s.ApplyPreset("center", 0)
	require.NoError(t, err)

	want := geometry.Rect{X: 384, Y: 156, Width: 1152, Height: 728}
	assert.Equal(t, monitor.WindowHandle(8), got.Window)
	assert.Equal(t, "DP-1", got.Monitor.DeviceName)
	assert.Equal(t, want, got.Pixels)
	require.Len(t, b.Moves(), 1)
}

func TestSessionApplyExplicitMonitor(t *testing.T) {
	s, _ := newTestSession(t)

	p, err := s.Config.Preset("maximize")
	require.NoError(t, err)
	p.Monitor = "HDMI-1"

	got, err := s.Apply(p, 8)
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}, got.Pixels)
}

func TestSessionComputeDoesNotMove(t *testing.T) {
	s, b := newTestSession(t)

	p := config.Preset{Anchor: "top-right", Width: 600, Height: 400, Monitor: "pointer"}
	got, err := s.Compute(p)
	require.NoError(t, err)

	assert.False(t, got.Applied)
	assert.Equal(t, "DP-1", got.Monitor.DeviceName)
	assert.Equal(t, geometry.LogicalRect{X: 1320, Y: 0, Width: 600, Height: 400}, got.Logical)
	assert.Equal(t, geometry.Rect{X: 1320, Y: 0, Width: 600, Height: 400}, got.Pixels)
	assert.Empty(t, b.Moves())
}

func TestSessionUnknownPreset(t *testing.T) {
	s, b := newTestSession(t)

	_, err := s.ApplyPreset("diagonal", 8)
	assert.Error(t, err)
	assert.Empty(t, b.Moves())
}

func TestSessionComputeForMatchesApply(t *testing.T) {
	s, b := newTestSession(t)

	p, err := s.Config.Preset("left-half")
	require.NoError(t, err)

	preview, err := s.ComputeFor(p, 7)
	require.NoError(t, err)
	assert.Empty(t, b.Moves())
	assert.False(t, preview.Applied)
	assert.Equal(t, "HDMI-1", preview.Monitor.DeviceName)

	placed, err := s.Apply(p, 7)
	require.NoError(t, err)
	assert.Equal(t, preview.Pixels, placed.Pixels)
	assert.Equal(t, preview.Window, placed.Window)
}

func TestStaticBackendDefaultsPrimaryToFirstMonitor(t *testing.T) {
	topo := testConfig().Static
	for i := range topo.Monitors {
		topo.Monitors[i].Primary = false
	}
	b := NewStaticBackend(topo, true, nil)

	first, err := b.MonitorInfo(1)
	require.NoError(t, err)
	assert.True(t, first.Primary)
	second, err := b.MonitorInfo(2)
	require.NoError(t, err)
	assert.False(t, second.Primary)

	s := NewSessionWithBackend(b, testConfig(), nil)
	primary, err := s.Monitors.Primary()
	require.NoError(t, err)
	assert.Equal(t, "DP-1", primary.DeviceName())
}

func TestSessionRefusesShellWindows(t *testing.T) {
	cfg := testConfig()
	cfg.Static.Windows[9] = geometry.Rect{Y: 1040, Width: 1920, Height: 40}
	cfg.Static.WindowTypes = map[uint32]string{9: "dock", 8: "_NET_WM_WINDOW_TYPE_NORMAL"}
	require.NoError(t, cfg.Validate())

	b := NewStaticBackend(cfg.Static, true, nil)
	s := NewSessionWithBackend(b, cfg, nil)
	assert.False(t, b.IsNormalWindow(9))
	assert.True(t, b.IsNormalWindow(8))
	assert.True(t, b.IsNormalWindow(7), "untyped windows are normal")

	_, err := s.ApplyPreset("maximize", 9)
	assert.ErrorIs(t, err, ErrNotPlaceable)

	b.SetActiveWindow(9)
	_, err = s.ApplyPreset("left-half", 0)
	assert.ErrorIs(t, err, ErrNotPlaceable)
	p, err := s.Config.Preset("left-half")
	require.NoError(t, err)
	_, err = s.ComputeFor(p, 0)
	assert.ErrorIs(t, err, ErrNotPlaceable)
	assert.Empty(t, b.Moves())

	placed, err := s.ApplyPreset("left-half", 8)
	require.NoError(t, err)
	assert.True(t, placed.Applied)
}

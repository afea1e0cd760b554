package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
)

func testSession(t *testing.T) (*platform.Session, *platform.StaticBackend) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendStatic
	cfg.Static = config.StaticTopology{
		Monitors: []config.StaticMonitor{
			{Name: "DP-1", Bounds: geometry.Rect{Width: 1920, Height: 1080}, Primary: true, DPI: 96},
			{Name: "HDMI-1", Bounds: geometry.Rect{X: 1920, Width: 2560, Height: 1440}, DPI: 96},
		},
		Windows:      map[uint32]geometry.Rect{7: {X: 2000, Y: 100, Width: 400, Height: 300}},
		ActiveWindow: 7,
	}
	require.NoError(t, cfg.Validate())

	b := platform.NewStaticBackend(cfg.Static, true, nil)
	return platform.NewSessionWithBackend(b, cfg, nil), b
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModelPreviewsSelection(t *testing.T) {
	s, b := testSession(t)
	m := NewModel(s, 0)

	first := m.Selected()
	require.NotEmpty(t, first)
	require.NotNil(t, m.Preview())
	assert.Equal(t, "HDMI-1", m.Preview().Monitor.DeviceName, "active window lives on HDMI-1")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.NotEqual(t, first, m.Selected())

	p, err := s.Config.Preset(m.Selected())
	require.NoError(t, err)
	want, err := s.ComputeFor(p, 7)
	require.NoError(t, err)
	assert.Equal(t, want.Pixels, m.Preview().Pixels)

	assert.Empty(t, b.Moves(), "browsing never moves the window")
	assert.Contains(t, m.View(), "HDMI-1")
}

func TestModelEnterApplies(t *testing.T) {
	s, b := testSession(t)
	m := NewModel(s, monitor.WindowHandle(7))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, m.Err())
	assert.Contains(t, m.Status(), "placed 0x7")

	moves := b.Moves()
	require.Len(t, moves, 1)
	assert.Equal(t, monitor.WindowHandle(7), moves[0].Window)
	assert.Equal(t, m.Preview().Pixels, moves[0].Bounds)
}

func TestModelQuit(t *testing.T) {
	s, _ := testSession(t)
	m := NewModel(s, 7)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := update(t, m, key)
		require.NotNil(t, cmd, key.String())
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModelWindowResize(t *testing.T) {
	s, _ := testSession(t)
	m := NewModel(s, 7)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 40, m.height)
}

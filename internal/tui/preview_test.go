package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

func twoMonitors() []monitor.Summary {
	return []monitor.Summary{
		{DeviceName: "DP-1", Primary: true, Bounds: geometry.Rect{Width: 1000, Height: 1000}},
		{DeviceName: "HDMI-1", Bounds: geometry.Rect{X: 1000, Width: 1000, Height: 1000}},
	}
}

func TestRenderMapDimensions(t *testing.T) {
	lines := RenderMap(twoMonitors(), nil, 41, 11)
	require.Len(t, lines, 11)
	for _, l := range lines {
		assert.Equal(t, 41, utf8.RuneCountInString(l))
	}
}

func TestRenderMapBorders(t *testing.T) {
	lines := RenderMap(twoMonitors(), nil, 41, 11)

	top := []rune(lines[0])
	assert.Equal(t, '╔', top[0], "primary uses a double border")
	assert.Equal(t, '┐', top[40])
	assert.Contains(t, lines[1], "DP-1")
	assert.Contains(t, lines[1], "HDMI-1")
	assert.NotContains(t, strings.Join(lines, ""), string(targetRune))
}

func TestRenderMapTarget(t *testing.T) {
	target := geometry.Rect{X: 1000, Y: 500, Width: 1000, Height: 500}
	lines := RenderMap(twoMonitors(), &target, 41, 11)

	// Lower half of the right monitor is filled, the left monitor is not.
	assert.Contains(t, lines[8], string(targetRune))
	assert.NotContains(t, lines[2], string(targetRune))
	left := []rune(lines[8])[:20]
	assert.NotContains(t, string(left), string(targetRune))
}

func TestRenderMapEmpty(t *testing.T) {
	lines := RenderMap(nil, nil, 5, 2)
	assert.Equal(t, []string{"     ", "     "}, lines)

	assert.Empty(t, RenderMap(twoMonitors(), nil, 0, 0))
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
)

const staticYAML = `
backend: static
static:
  monitors:
    - name: DP-1
      bounds: {x: 0, y: 0, width: 1920, height: 1080}
      work_area: {x: 0, y: 0, width: 1920, height: 1040}
      primary: true
      dpi: 96
    - name: HDMI-1
      bounds: {x: 1920, y: 0, width: 2560, height: 1440}
      dpi: 144
  windows:
    7: {x: 1800, y: 100, width: 400, height: 300}
  active_window: 7
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(staticYAML)+"\n"), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMonitorsJSON(t *testing.T) {
	out, err := run(t, "monitors", "--json")
	require.NoError(t, err)

	var ms []monitor.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &ms))
	require.Len(t, ms, 2)
	assert.Equal(t, "DP-1", ms[0].DeviceName)
	assert.True(t, ms[0].Primary)
	assert.Equal(t, geometry.Rect{Width: 1920, Height: 1040}, ms[0].WorkingArea)
	assert.Equal(t, 1.5, ms[1].ScaleFactor)
}

func TestMonitorsPlainOutput(t *testing.T) {
	out, err := run(t, "monitors")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "DEVICE\tPRIMARY"))
	assert.True(t, strings.HasPrefix(lines[1], "DP-1\t*\t1.00"))
	assert.True(t, strings.HasPrefix(lines[2], "HDMI-1\t\t1.50"))
}

func TestAtAndPrimary(t *testing.T) {
	out, err := run(t, "at", "2000", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "device:       HDMI-1")

	out, err = run(t, "at", "--logical", "2500", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "device:       HDMI-1")

	out, err = run(t, "primary")
	require.NoError(t, err)
	assert.Contains(t, out, "device:       DP-1")

	_, err = run(t, "at", "x", "10")
	assert.ErrorContains(t, err, "invalid x")
}

func TestWindow(t *testing.T) {
	out, err := run(t, "window", "0x7", "--json")
	require.NoError(t, err)

	var info windowInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.EqualValues(t, 7, info.Window)
	require.NotNil(t, info.Geometry)
	assert.Equal(t, "HDMI-1", info.Monitor.DeviceName)
}

func TestPlaceComputesOnly(t *testing.T) {
	out, err := run(t, "place", "top-left", "--width", "600", "--height", "400", "--monitor", "primary", "--json")
	require.NoError(t, err)

	var p platform.Placement
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, geometry.Rect{Width: 600, Height: 400}, p.Pixels)
	assert.False(t, p.Applied)

	_, err = run(t, "place", "middle")
	assert.ErrorContains(t, err, "invalid anchor")
}

func TestPlacePreview(t *testing.T) {
	out, err := run(t, "place", "bottom-right", "--monitor", "HDMI-1", "--width-percent", "50", "--height-percent", "50", "--preview")
	require.NoError(t, err)
	assert.Contains(t, out, "pixels:  ")
	assert.Contains(t, out, "▓")
	assert.Contains(t, out, "HDMI-1")
	assert.Contains(t, out, "╔", "primary drawn with a double border")
}

func TestTUIRequiresTerminal(t *testing.T) {
	_, err := run(t, "tui")
	assert.ErrorContains(t, err, "interactive terminal")
}

func TestApplyPreset(t *testing.T) {
	out, err := run(t, "apply", "left-half", "--window", "7", "--json")
	require.NoError(t, err)

	var p platform.Placement
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.True(t, p.Applied)
	assert.Equal(t, geometry.Rect{X: 1920, Width: 1280, Height: 1440}, p.Pixels)

	out, err = run(t, "apply", "maximize", "--monitor", "DP-1", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "applied: false")
	assert.Contains(t, out, "pixels:  ")

	_, err = run(t, "apply", "nope")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestAnchorsAndPresets(t *testing.T) {
	out, err := run(t, "anchors")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 10)

	out, err = run(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "left-half\tleft\t50%x100%")
	assert.Contains(t, out, "maximize\tmaximize\tfull")
}

func TestConfigCommands(t *testing.T) {
	out, err := run(t, "config", "validate")
	require.NoError(t, err)
	assert.Equal(t, "config: ok\n", out)

	out, err = run(t, "config", "explain", "backend")
	require.NoError(t, err)
	assert.Contains(t, out, "source: file:")
	assert.Contains(t, out, "value:\nstatic\n")

	out, err = run(t, "config", "print", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: auto")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	assert.ErrorContains(t, cmd.Execute(), "already exists")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SCREENPLACE_LOG_LEVEL", "loud")
	_, err := run(t, "monitors")
	assert.ErrorContains(t, err, "invalid override")

	t.Setenv("SCREENPLACE_LOG_LEVEL", "debug")
	_, err = run(t, "--backend", "wayland", "monitors")
	assert.ErrorContains(t, err, "backend")
}

func TestDaemonClientCommandsWithoutDaemon(t *testing.T) {
	t.Setenv("SCREENPLACE_SOCKET", filepath.Join(t.TempDir(), "absent.sock"))

	for _, args := range [][]string{
		{"daemon", "status"},
		{"daemon", "reload"},
		{"daemon", "monitors"},
		{"daemon", "apply", "maximize"},
	} {
		_, err := run(t, args...)
		assert.ErrorContains(t, err, "is the daemon running", strings.Join(args, " "))
	}

	_, err := run(t, "daemon", "apply", "maximize", "--window", "nope")
	assert.Error(t, err)
}

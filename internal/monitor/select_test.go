package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/screenplace/internal/geometry"
)

type fakeLocator struct {
	window    WindowHandle
	windowErr error
	pointer   geometry.Point
	pointErr  error
}

func (f fakeLocator) ActiveWindow() (WindowHandle, error)      { return f.window, f.windowErr }
func (f fakeLocator) PointerPosition() (geometry.Point, error) { return f.pointer, f.pointErr }

func TestSelect(t *testing.T) {
	e := newTestEnumerator(dualHead())
	loc := fakeLocator{window: 1, pointer: geometry.Point{X: 10, Y: 10}}

	tests := []struct {
		selector string
		want     Handle
	}{
		{"", 65},
		{"active", 65},
		{"Pointer", 64},
		{"primary", 64},
		{"HDMI-1", 65},
		{"DP-1", 64},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			m, err := e.Select(tt.selector, loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Handle())
		})
	}
}

func TestSelectActiveFallsBackToPointer(t *testing.T) {
	e := newTestEnumerator(dualHead())
	loc := fakeLocator{windowErr: errors.New("no _NET_ACTIVE_WINDOW"), pointer: geometry.Point{X: 3000, Y: 10}}

	m, err := e.Select("active", loc)
	require.NoError(t, err)
	assert.Equal(t, Handle(65), m.Handle())
}

func TestSelectWithoutLocatorUsesPrimary(t *testing.T) {
	e := newTestEnumerator(dualHead())

	m, err := e.Select("pointer", nil)
	require.NoError(t, err)
	assert.True(t, m.IsPrimary())
}

func TestSelectUnknownDevice(t *testing.T) {
	e := newTestEnumerator(dualHead())

	_, err := e.Select("VGA-9", fakeLocator{})
	assert.ErrorIs(t, err, ErrMonitorNotFound)
}

func TestReferenceDPIOverride(t *testing.T) {
	q := dualHead()
	e := NewEnumerator(q, DetectCapabilities(q), WithReferenceDPI(144))

	all := e.All()
	require.Len(t, all, 2)
	assert.Equal(t, 1.0, all[0].ScaleFactor())
	assert.InDelta(t, 0.6667, all[1].ScaleFactor(), 1e-3)
}

package monitor

import (
	"fmt"
	"iter"

	"github.com/1broseidon/screenplace/internal/geometry"
)

// StaticMonitor is one display of a StaticQuery. A DPI of 0 makes the DPI
// query for this monitor fail.
type StaticMonitor struct {
	Handle Handle
	Info   Info
	DPI    int
}

// StaticQuery is a DisplayQuery over a fixed, in-memory topology. It backs the
// static backend and stands in for the host in tests.
type StaticQuery struct {
	MultiMonitor    bool
	PerMonitorAware bool
	Monitors        []StaticMonitor
	VirtualWidth    int
	VirtualHeight   int
	Work            geometry.Rect
	Windows         map[WindowHandle]geometry.Rect
	EnumerateErr    error
}

var _ DisplayQuery = (*StaticQuery)(nil)

func (q *StaticQuery) MultiMonitorSupported() bool { return q.MultiMonitor }

func (q *StaticQuery) PerMonitorDPIAware() bool { return q.PerMonitorAware }

func (q *StaticQuery) EnumerateMonitors() (iter.Seq[Handle], error) {
	if q.EnumerateErr != nil {
		return nil, q.EnumerateErr
	}
	return func(yield func(Handle) bool) {
		for _, m := range q.Monitors {
			if !yield(m.Handle) {
				return
			}
		}
	}, nil
}

func (q *StaticQuery) MonitorInfo(h Handle) (Info, error) {
	m, ok := q.find(h)
	if !ok {
		return Info{}, fmt.Errorf("unknown monitor handle %d", h)
	}
	return m.Info, nil
}

func (q *StaticQuery) EffectiveDPI(h Handle) (int, int, error) {
	m, ok := q.find(h)
	if !ok {
		return 0, 0, fmt.Errorf("unknown monitor handle %d", h)
	}
	if m.DPI <= 0 {
		return 0, 0, fmt.Errorf("no dpi for monitor %d", h)
	}
	return m.DPI, m.DPI, nil
}

func (q *StaticQuery) VirtualScreen() (int, int, error) {
	if q.VirtualWidth <= 0 || q.VirtualHeight <= 0 {
		return 0, 0, fmt.Errorf("virtual screen size not set")
	}
	return q.VirtualWidth, q.VirtualHeight, nil
}

func (q *StaticQuery) WorkArea() (geometry.Rect, error) {
	if q.Work.Empty() {
		return geometry.Rect{X: 0, Y: 0, Width: q.VirtualWidth, Height: q.VirtualHeight}, nil
	}
	return q.Work, nil
}

func (q *StaticQuery) MonitorFromPoint(p geometry.Point, fallback Fallback) (Handle, error) {
	return ResolvePoint(q.candidates(), p, fallback)
}

func (q *StaticQuery) MonitorFromWindow(w WindowHandle, fallback Fallback) (Handle, error) {
	r, ok := q.Windows[w]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWindow, w)
	}
	return ResolveRect(q.candidates(), r, fallback)
}

func (q *StaticQuery) find(h Handle) (StaticMonitor, bool) {
	for _, m := range q.Monitors {
		if m.Handle == h {
			return m, true
		}
	}
	return StaticMonitor{}, false
}

func (q *StaticQuery) candidates() []Candidate {
	out := make([]Candidate, 0, len(q.Monitors))
	for _, m := range q.Monitors {
		out = append(out, Candidate{Handle: m.Handle, Bounds: m.Info.Bounds, Primary: m.Info.Primary})
	}
	return out
}

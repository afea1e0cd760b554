package monitor

import (
	"iter"
	"strings"

	"github.com/1broseidon/screenplace/internal/geometry"
)

// Handle is the opaque identity of a physical monitor. It stays valid until the
// display configuration changes.
type Handle uint64

// SyntheticHandle identifies the single descriptor produced on hosts without
// multi-monitor support.
const SyntheticHandle Handle = 0xBAADF00D

// SyntheticDeviceName is the device name of the synthetic descriptor.
const SyntheticDeviceName = "DISPLAY"

// WindowHandle is the opaque identity of a top-level window.
type WindowHandle uint32

// Fallback selects what a point or window lookup returns when no monitor matches.
type Fallback int

const (
	FallbackNone Fallback = iota
	FallbackPrimary
	FallbackNearest
)

func (f Fallback) String() string {
	switch f {
	case FallbackPrimary:
		return "primary"
	case FallbackNearest:
		return "nearest"
	default:
		return "none"
	}
}

// Info is the raw per-monitor data reported by the host.
type Info struct {
	Bounds     geometry.Rect
	WorkArea   geometry.Rect
	Primary    bool
	DeviceName string
}

// DisplayQuery is the native display layer the enumerator is built on.
type DisplayQuery interface {
	// MultiMonitorSupported reports whether the host can enumerate monitors.
	MultiMonitorSupported() bool
	// PerMonitorDPIAware reports whether per-monitor DPI values apply to this process.
	PerMonitorDPIAware() bool
	// EnumerateMonitors yields one handle per physical display in host order.
	EnumerateMonitors() (iter.Seq[Handle], error)
	MonitorInfo(h Handle) (Info, error)
	EffectiveDPI(h Handle) (dpiX, dpiY int, err error)
	// VirtualScreen and WorkArea back the synthetic single-display descriptor.
	VirtualScreen() (width, height int, err error)
	WorkArea() (geometry.Rect, error)
	MonitorFromPoint(p geometry.Point, fallback Fallback) (Handle, error)
	MonitorFromWindow(w WindowHandle, fallback Fallback) (Handle, error)
}

// Capabilities are host facts read once at startup and injected into the enumerator.
type Capabilities struct {
	MultiMonitor       bool
	PerMonitorDPIAware bool
}

// DetectCapabilities queries the host capability flags.
func DetectCapabilities(q DisplayQuery) Capabilities {
	return Capabilities{
		MultiMonitor:       q.MultiMonitorSupported(),
		PerMonitorDPIAware: q.PerMonitorDPIAware(),
	}
}

// Candidate is a monitor considered by ResolvePoint and ResolveRect.
type Candidate struct {
	Handle  Handle
	Bounds  geometry.Rect
	Primary bool
}

// ResolvePoint picks the candidate containing p, applying fallback when none does.
func ResolvePoint(candidates []Candidate, p geometry.Point, fallback Fallback) (Handle, error) {
	for _, c := range candidates {
		if c.Bounds.Contains(p) {
			return c.Handle, nil
		}
	}
	return applyFallback(candidates, p, fallback)
}

// ResolveRect picks the candidate sharing the largest area with r, applying
// fallback against the center of r when none overlaps.
func ResolveRect(candidates []Candidate, r geometry.Rect, fallback Fallback) (Handle, error) {
	rects := make([]geometry.Rect, len(candidates))
	for i, c := range candidates {
		rects[i] = c.Bounds
	}
	if i := geometry.LargestOverlap(rects, r); i >= 0 {
		return candidates[i].Handle, nil
	}
	return applyFallback(candidates, r.Center(), fallback)
}

func applyFallback(candidates []Candidate, p geometry.Point, fallback Fallback) (Handle, error) {
	switch fallback {
	case FallbackNearest:
		rects := make([]geometry.Rect, len(candidates))
		for i, c := range candidates {
			rects[i] = c.Bounds
		}
		if i := geometry.Nearest(rects, p); i >= 0 {
			return candidates[i].Handle, nil
		}
	case FallbackPrimary:
		for _, c := range candidates {
			if c.Primary {
				return c.Handle, nil
			}
		}
	}
	return 0, ErrNoMonitor
}

// TrimDeviceName strips the NUL and space padding hosts leave on device names.
func TrimDeviceName(name string) string {
	return strings.TrimRight(name, "\x00 \t")
}

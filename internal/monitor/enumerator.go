package monitor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/logging"
)

// Enumerator builds monitor descriptors from a DisplayQuery. It holds no
// monitor state: every call reflects the live configuration.
type Enumerator struct {
	query        DisplayQuery
	caps         Capabilities
	referenceDPI int
	logger       *slog.Logger
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Enumerator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithReferenceDPI sets the DPI that maps to scale 1. Values <= 0 keep the
// default of 96.
func WithReferenceDPI(dpi int) Option {
	return func(e *Enumerator) {
		if dpi > 0 {
			e.referenceDPI = dpi
		}
	}
}

// NewEnumerator creates an enumerator over q using capability flags detected once at startup.
func NewEnumerator(q DisplayQuery, caps Capabilities, opts ...Option) *Enumerator {
	e := &Enumerator{
		query:        q,
		caps:         caps,
		referenceDPI: geometry.ReferenceDPI,
		logger:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capabilities returns the host capability flags the enumerator was built with.
func (e *Enumerator) Capabilities() Capabilities {
	return e.caps
}

// All returns one descriptor per physical monitor in host order. Callers must
// not assume left-to-right or primary-first ordering. The result is never empty.
func (e *Enumerator) All() []Monitor {
	if !e.caps.MultiMonitor {
		return []Monitor{e.synthetic()}
	}

	handles, err := e.query.EnumerateMonitors()
	if err != nil {
		e.logger.Warn("monitor enumeration failed, using single display",
			"error", fmt.Errorf("%w: %w", ErrDegenerateEnumeration, err))
		return []Monitor{e.synthetic()}
	}

	var monitors []Monitor
	for h := range handles {
		m, err := e.describe(h)
		if err != nil {
			e.logger.Warn("skipping monitor", "handle", uint64(h), "error", err)
			continue
		}
		monitors = append(monitors, m)
	}

	if len(monitors) == 0 {
		e.logger.Warn("using single display", "error", ErrDegenerateEnumeration)
		return []Monitor{e.synthetic()}
	}
	return monitors
}

// Primary returns the monitor flagged primary by the host.
func (e *Enumerator) Primary() (Monitor, error) {
	for _, m := range e.All() {
		if m.IsPrimary() {
			return m, nil
		}
	}
	return Monitor{}, ErrNoPrimaryDisplay
}

// FromPoint returns the monitor containing the pixel point p, or the nearest
// one when p lies outside every monitor.
func (e *Enumerator) FromPoint(p geometry.Point) Monitor {
	if !e.caps.MultiMonitor {
		return e.synthetic()
	}

	h, err := e.query.MonitorFromPoint(p, FallbackNearest)
	if err == nil {
		m, derr := e.describe(h)
		if derr == nil {
			return m
		}
		err = derr
	}
	e.logger.Debug("native point lookup failed, searching nearest", "x", p.X, "y", p.Y, "error", err)

	all := e.All()
	rects := make([]geometry.Rect, len(all))
	for i, m := range all {
		rects[i] = m.Bounds()
	}
	if i := geometry.Nearest(rects, p); i >= 0 {
		return all[i]
	}
	return all[0]
}

// FromLogicalPoint returns the monitor whose logical bounds contain p.
//
// Unlike FromPoint there is no nearest-monitor search: a point outside every
// monitor resolves to the synthetic primary descriptor.
func (e *Enumerator) FromLogicalPoint(p geometry.LogicalPoint) Monitor {
	for _, m := range e.All() {
		if m.LogicalBounds().Contains(p) {
			return m
		}
	}
	return e.synthetic()
}

// FromWindow returns the monitor holding the largest part of window w, or the
// nearest monitor when the window overlaps none.
func (e *Enumerator) FromWindow(w WindowHandle) Monitor {
	if !e.caps.MultiMonitor {
		return e.synthetic()
	}

	h, err := e.query.MonitorFromWindow(w, FallbackNearest)
	if err == nil {
		m, derr := e.describe(h)
		if derr == nil {
			return m
		}
		err = derr
	}
	e.logger.Debug("native window lookup failed, using primary", "window", uint32(w), "error", err)

	if m, err := e.Primary(); err == nil {
		return m
	}
	return e.synthetic()
}

// ByDeviceName returns the monitor with the given device name.
func (e *Enumerator) ByDeviceName(name string) (Monitor, error) {
	name = TrimDeviceName(strings.TrimSpace(name))
	for _, m := range e.All() {
		if m.DeviceName() == name {
			return m, nil
		}
	}
	return Monitor{}, fmt.Errorf("%w: %q", ErrMonitorNotFound, name)
}

func (e *Enumerator) describe(h Handle) (Monitor, error) {
	info, err := e.query.MonitorInfo(h)
	if err != nil {
		return Monitor{}, fmt.Errorf("monitor info for handle %d: %w", h, err)
	}
	if info.Bounds.Empty() {
		return Monitor{}, fmt.Errorf("monitor %d reports empty bounds %s", h, info.Bounds)
	}

	return Monitor{
		handle:     h,
		bounds:     info.Bounds,
		primary:    info.Primary,
		deviceName: TrimDeviceName(info.DeviceName),
		scale:      e.scaleFor(h),
		query:      e.query,
	}, nil
}

func (e *Enumerator) scaleFor(h Handle) float64 {
	if !e.caps.PerMonitorDPIAware {
		return 1
	}

	dpiX, _, err := e.query.EffectiveDPI(h)
	if err != nil {
		e.logger.Debug("using scale 1", "handle", uint64(h), "error", fmt.Errorf("%w: %w", ErrDpiQueryFailed, err))
		return 1
	}
	if e.referenceDPI == geometry.ReferenceDPI {
		return geometry.ScaleForDPI(dpiX)
	}
	return geometry.NormalizeScale(float64(dpiX) / float64(e.referenceDPI))
}

func (e *Enumerator) synthetic() Monitor {
	bounds := geometry.Rect{Width: 1, Height: 1}

	w, h, err := e.query.VirtualScreen()
	switch {
	case err == nil && w > 0 && h > 0:
		bounds.Width, bounds.Height = w, h
	default:
		e.logger.Error("virtual screen metrics unavailable", "error", err, "width", w, "height", h)
		if work, werr := e.query.WorkArea(); werr == nil && !work.Empty() {
			bounds.Width, bounds.Height = work.Right(), work.Bottom()
		}
	}

	return Monitor{
		handle:     SyntheticHandle,
		bounds:     bounds,
		primary:    true,
		deviceName: SyntheticDeviceName,
		scale:      1,
		synthetic:  true,
		query:      e.query,
	}
}

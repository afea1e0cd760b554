package platform

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/placement"
)

// Move is one MoveResize call recorded by the static backend.
type Move struct {
	Window monitor.WindowHandle `json:"window"`
	Bounds geometry.Rect        `json:"bounds"`
}

// StaticBackend serves a fixed topology. Moves update the recorded window
// frames so later lookups see them.
type StaticBackend struct {
	*monitor.StaticQuery

	mu      sync.Mutex
	types   map[monitor.WindowHandle]string
	active  monitor.WindowHandle
	pointer geometry.Point
	moves   []Move
	logger  *slog.Logger
}

var _ Backend = (*StaticBackend)(nil)

// NewStaticBackend builds a backend from the static section of the config.
// Monitor handles are assigned in list order starting at 1. When no monitor
// is flagged primary the first one is, as on an X server without a RandR
// primary output.
func NewStaticBackend(t config.StaticTopology, perMonitorAware bool, logger *slog.Logger) *StaticBackend {
	if logger == nil {
		logger = logging.Discard()
	}

	q := &monitor.StaticQuery{
		MultiMonitor:    t.GetMultiMonitor(),
		PerMonitorAware: perMonitorAware,
		Windows:         make(map[monitor.WindowHandle]geometry.Rect, len(t.Windows)),
	}

	var extent geometry.Rect
	for i, m := range t.Monitors {
		work := m.WorkArea
		if work.Empty() {
			work = m.Bounds
		}
		q.Monitors = append(q.Monitors, monitor.StaticMonitor{
			Handle: monitor.Handle(i + 1),
			Info: monitor.Info{
				Bounds:     m.Bounds,
				WorkArea:   work,
				Primary:    m.Primary,
				DeviceName: m.Name,
			},
			DPI: m.DPI,
		})
		extent = extent.Union(m.Bounds)
	}

	isPrimary := func(m monitor.StaticMonitor) bool { return m.Info.Primary }
	if len(q.Monitors) > 0 && !slices.ContainsFunc(q.Monitors, isPrimary) {
		q.Monitors[0].Info.Primary = true
		logger.Debug("no primary monitor configured, using the first", "monitor", q.Monitors[0].Info.DeviceName)
	}

	q.VirtualWidth, q.VirtualHeight = t.VirtualScreen.Width, t.VirtualScreen.Height
	if q.VirtualWidth == 0 || q.VirtualHeight == 0 {
		q.VirtualWidth, q.VirtualHeight = extent.Right(), extent.Bottom()
	}
	q.Work = t.WorkArea
	if q.Work.Empty() {
		q.Work = geometry.Rect{Width: q.VirtualWidth, Height: q.VirtualHeight}
	}
	for id, r := range t.Windows {
		q.Windows[monitor.WindowHandle(id)] = r
	}

	b := &StaticBackend{
		StaticQuery: q,
		types:       make(map[monitor.WindowHandle]string, len(t.WindowTypes)),
		active:      monitor.WindowHandle(t.ActiveWindow),
		logger:      logger,
	}
	for id, typ := range t.WindowTypes {
		b.types[monitor.WindowHandle(id)] = typ
	}
	if t.Pointer != nil {
		b.pointer = *t.Pointer
	} else {
		b.pointer = b.primaryCenter()
	}
	return b
}

func (b *StaticBackend) Name() string { return string(config.BackendStatic) }

func (b *StaticBackend) Close() error { return nil }

// MoveResize records the move and updates the window frame.
func (b *StaticBackend) MoveResize(w monitor.WindowHandle, r geometry.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.moves = append(b.moves, Move{Window: w, Bounds: r})
	b.Windows[w] = r
	b.logger.Info("window moved", "backend", b.Name(), "window", uint32(w), "bounds", r.String())
	return nil
}

// MonitorFromWindow resolves w against its recorded frame.
func (b *StaticBackend) MonitorFromWindow(w monitor.WindowHandle, fallback monitor.Fallback) (monitor.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StaticQuery.MonitorFromWindow(w, fallback)
}

// WindowGeometry returns the recorded frame of w.
func (b *StaticBackend) WindowGeometry(w monitor.WindowHandle) (geometry.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.Windows[w]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("%w: %d", monitor.ErrUnknownWindow, w)
	}
	return r, nil
}

// IsNormalWindow reports whether w may be placed according to its
// configured window type.
func (b *StaticBackend) IsNormalWindow(w monitor.WindowHandle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	typ, ok := b.types[w]
	return !ok || placement.Placeable([]string{typ})
}

// Moves returns the moves recorded so far.
func (b *StaticBackend) Moves() []Move {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Move(nil), b.moves...)
}

func (b *StaticBackend) ActiveWindow() (monitor.WindowHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == 0 {
		return 0, fmt.Errorf("static topology has no active window")
	}
	return b.active, nil
}

// SetActiveWindow changes the window reported as focused.
func (b *StaticBackend) SetActiveWindow(w monitor.WindowHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = w
}

func (b *StaticBackend) PointerPosition() (geometry.Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pointer, nil
}

func (b *StaticBackend) primaryCenter() geometry.Point {
	for _, m := range b.Monitors {
		if m.Info.Primary {
			return m.Info.Bounds.Center()
		}
	}
	if len(b.Monitors) > 0 {
		return b.Monitors[0].Info.Bounds.Center()
	}
	return geometry.Point{}
}

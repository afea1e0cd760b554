package platform

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/placement"
)

// Session is an open backend with its enumerator and configuration. The CLI,
// the hotkey daemon and the MCP server all place windows through it.
type Session struct {
	Backend  Backend
	Monitors *monitor.Enumerator
	Config   *config.Config
	logger   *slog.Logger
}

// Placement describes a computed, and possibly applied, window placement.
type Placement struct {
	Window  monitor.WindowHandle `json:"window,omitempty"`
	Monitor monitor.Summary      `json:"monitor"`
	Anchor  placement.Anchor     `json:"anchor"`
	Logical geometry.LogicalRect `json:"logical"`
	Pixels  geometry.Rect        `json:"pixels"`
	Applied bool                 `json:"applied"`
}

// NewSession opens the configured backend.
func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	b, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewSessionWithBackend(b, cfg, logger), nil
}

// NewSessionWithBackend wraps an already open backend.
func NewSessionWithBackend(b Backend, cfg *config.Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		Backend:  b,
		Monitors: NewEnumerator(b, cfg, logger),
		Config:   cfg,
		logger:   logger,
	}
}

func (s *Session) Close() error {
	return s.Backend.Close()
}

// Compute resolves p to a placement without moving anything. The target
// monitor comes from the preset's monitor selector.
func (s *Session) Compute(p config.Preset) (Placement, error) {
	m, err := s.Monitors.Select(p.Monitor, s.Backend)
	if err != nil {
		return Placement{}, err
	}
	return s.compute(p, m)
}

func (s *Session) compute(p config.Preset, m monitor.Monitor) (Placement, error) {
	req, err := p.Request(m)
	if err != nil {
		return Placement{}, err
	}
	rect, err := placement.PlaceOn(m, req)
	if err != nil {
		return Placement{}, err
	}
	return Placement{
		Monitor: m.Summary(),
		Anchor:  req.Anchor,
		Logical: rect,
		Pixels:  placement.PixelRect(m, rect),
	}, nil
}

// ComputeFor resolves p for window w without moving it. The monitor is
// chosen exactly as Apply would choose it.
func (s *Session) ComputeFor(p config.Preset, w monitor.WindowHandle) (Placement, error) {
	w, m, err := s.target(p, w)
	if err != nil {
		return Placement{}, err
	}
	out, err := s.compute(p, m)
	if err != nil {
		return Placement{}, err
	}
	out.Window = w
	return out, nil
}

// Apply places window w according to p. A zero w means the active window.
// The "active" selector targets the monitor holding w itself.
func (s *Session) Apply(p config.Preset, w monitor.WindowHandle) (Placement, error) {
	w, m, err := s.target(p, w)
	if err != nil {
		return Placement{}, err
	}

	req, err := p.Request(m)
	if err != nil {
		return Placement{}, err
	}
	px, err := placement.Apply(s.Backend, w, m, req)
	if err != nil {
		return Placement{}, err
	}

	out, err := s.compute(p, m)
	if err != nil {
		return Placement{}, err
	}
	out.Window = w
	out.Pixels = px
	out.Applied = true

	s.logger.Info("placed window",
		"window", uint32(w),
		"monitor", m.DeviceName(),
		"anchor", string(req.Anchor),
		"bounds", px.String())
	return out, nil
}

func (s *Session) target(p config.Preset, w monitor.WindowHandle) (monitor.WindowHandle, monitor.Monitor, error) {
	if w == 0 {
		active, err := s.Backend.ActiveWindow()
		if err != nil {
			return 0, monitor.Monitor{}, err
		}
		w = active
	}
	if wc, ok := s.Backend.(windowClassifier); ok && !wc.IsNormalWindow(w) {
		return 0, monitor.Monitor{}, fmt.Errorf("%w: 0x%x", ErrNotPlaceable, uint32(w))
	}

	switch strings.ToLower(strings.TrimSpace(p.Monitor)) {
	case "", monitor.SelectActive:
		return w, s.Monitors.FromWindow(w), nil
	default:
		m, err := s.Monitors.Select(p.Monitor, s.Backend)
		return w, m, err
	}
}

// ApplyPreset looks up a preset (or anchor name) and applies it to w.
func (s *Session) ApplyPreset(name string, w monitor.WindowHandle) (Placement, error) {
	p, err := s.Config.Preset(name)
	if err != nil {
		return Placement{}, err
	}
	out, err := s.Apply(p, w)
	if err != nil {
		return Placement{}, fmt.Errorf("preset %q: %w", name, err)
	}
	return out, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/placement"
)

// Backend names the display backend.
type Backend string

const (
	BackendAuto   Backend = "auto"   // X11 when $DISPLAY is set, static otherwise.
	BackendX11    Backend = "x11"    // Live X server via RandR/Xinerama.
	BackendStatic Backend = "static" // Fixed topology from the static section.
)

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is one of text, json, logfmt.
	Format string `yaml:"format"`
}

// DPIConfig controls how scale factors are derived.
type DPIConfig struct {
	// PerMonitorAware enables per-monitor scale factors. Default: true.
	// When false every monitor reports scale 1.
	PerMonitorAware *bool `yaml:"per_monitor_aware"`
	// ReferenceDPI is the DPI that maps to scale 1. Default: 96.
	ReferenceDPI int `yaml:"reference_dpi"`
}

// GetPerMonitorAware returns the effective value, defaulting to true.
func (d DPIConfig) GetPerMonitorAware() bool {
	if d.PerMonitorAware == nil {
		return true
	}
	return *d.PerMonitorAware
}

// PickerConfig configures the preset menu.
type PickerConfig struct {
	// Backend is one of auto, rofi, fuzzel, wofi, dmenu.
	Backend string `yaml:"backend"`
}

var pickerBackends = []string{"auto", "rofi", "fuzzel", "wofi", "dmenu"}

// Preset is a named placement. Sizes are logical pixels; the percent fields,
// when set, size the window relative to the target area instead.
type Preset struct {
	Anchor        string  `yaml:"anchor"`
	Width         float64 `yaml:"width,omitempty"`
	Height        float64 `yaml:"height,omitempty"`
	WidthPercent  float64 `yaml:"width_percent,omitempty"`  // 0-100
	HeightPercent float64 `yaml:"height_percent,omitempty"` // 0-100
	// Monitor selects the target: primary, pointer, active or a device name.
	Monitor  string `yaml:"monitor,omitempty"`
	Clamp    *bool  `yaml:"clamp,omitempty"`
	WorkArea *bool  `yaml:"work_area,omitempty"`
}

// StaticMonitor describes one display of the static backend.
type StaticMonitor struct {
	Name     string        `yaml:"name"`
	Bounds   geometry.Rect `yaml:"bounds"`
	WorkArea geometry.Rect `yaml:"work_area,omitempty"`
	Primary  bool          `yaml:"primary,omitempty"`
	// DPI of 0 makes the DPI query fail for this display (scale 1).
	DPI int `yaml:"dpi,omitempty"`
}

// VirtualScreen is the size of the whole desktop.
type VirtualScreen struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StaticTopology is the display layout served by the static backend.
type StaticTopology struct {
	// MultiMonitor reports multi-monitor capability. Default: true.
	MultiMonitor  *bool           `yaml:"multi_monitor,omitempty"`
	VirtualScreen VirtualScreen   `yaml:"virtual_screen,omitempty"`
	WorkArea      geometry.Rect   `yaml:"work_area,omitempty"`
	Monitors      []StaticMonitor `yaml:"monitors,omitempty"`

	// Windows seeds known window frames, keyed by window id.
	Windows      map[uint32]geometry.Rect `yaml:"windows,omitempty"`
	ActiveWindow uint32                   `yaml:"active_window,omitempty"`
	// WindowTypes gives EWMH window types (dock, desktop, normal, ...) by
	// window id. Unlisted windows are normal.
	WindowTypes map[uint32]string `yaml:"window_types,omitempty"`
	// Pointer defaults to the center of the primary monitor.
	Pointer *geometry.Point `yaml:"pointer,omitempty"`
}

// GetMultiMonitor returns the effective value, defaulting to true.
func (s StaticTopology) GetMultiMonitor() bool {
	if s.MultiMonitor == nil {
		return true
	}
	return *s.MultiMonitor
}

// Config is the effective screenplace configuration.
type Config struct {
	Backend Backend `yaml:"backend"`
	// Display overrides $DISPLAY for the x11 backend.
	Display string `yaml:"display,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
	DPI     DPIConfig     `yaml:"dpi"`

	// Placement holds the defaults for ad-hoc placements.
	Placement Preset `yaml:"placement"`

	Presets map[string]Preset `yaml:"presets"`
	// Hotkeys maps key sequences (xgbutil keybind syntax) to preset names.
	// An empty preset name unbinds a default sequence.
	Hotkeys map[string]string `yaml:"hotkeys"`

	Picker PickerConfig `yaml:"picker"`

	Static StaticTopology `yaml:"static,omitempty"`
}

func boolPtr(v bool) *bool { return &v }

// DefaultConfig returns a Config with built-in defaults applied.
func DefaultConfig() *Config {
	presets := BuiltinPresets()
	hotkeys := DefaultHotkeys()
	return &Config{
		Backend: BackendAuto,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		DPI: DPIConfig{
			PerMonitorAware: boolPtr(true),
			ReferenceDPI:    geometry.ReferenceDPI,
		},
		Placement: Preset{
			Anchor:   string(placement.AnchorCenter),
			Width:    1280,
			Height:   800,
			Monitor:  monitor.SelectActive,
			Clamp:    boolPtr(true),
			WorkArea: boolPtr(true),
		},
		Presets: presets,
		Hotkeys: hotkeys,
		Picker:  PickerConfig{Backend: "auto"},
		Static: StaticTopology{
			Monitors: []StaticMonitor{{
				Name:    "STATIC-1",
				Bounds:  geometry.Rect{Width: 1920, Height: 1080},
				Primary: true,
				DPI:     geometry.ReferenceDPI,
			}},
		},
	}
}

// Preset returns the preset called name. Anchor names double as presets that
// inherit the placement defaults.
func (c *Config) Preset(name string) (Preset, error) {
	if p, ok := c.Presets[name]; ok {
		return c.WithDefaults(p), nil
	}
	anchor, err := placement.ParseAnchor(name)
	if err != nil {
		return Preset{}, fmt.Errorf("unknown preset %q: not a preset or anchor", name)
	}
	p := c.Placement
	p.Anchor = string(anchor)
	return c.WithDefaults(p), nil
}

// PresetNames returns the configured preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithDefaults fills the unset fields of p from the placement defaults.
func (c *Config) WithDefaults(p Preset) Preset {
	d := c.Placement
	if p.Anchor == "" {
		p.Anchor = d.Anchor
	}
	if p.Width == 0 && p.WidthPercent == 0 {
		p.Width, p.WidthPercent = d.Width, d.WidthPercent
	}
	if p.Height == 0 && p.HeightPercent == 0 {
		p.Height, p.HeightPercent = d.Height, d.HeightPercent
	}
	if p.Monitor == "" {
		p.Monitor = d.Monitor
	}
	if p.Clamp == nil {
		p.Clamp = d.Clamp
	}
	if p.WorkArea == nil {
		p.WorkArea = d.WorkArea
	}
	return p
}

// Overlay resolves name (the placement defaults when name is empty) and
// applies the set fields of o on top. An explicit size replaces a percent
// size on the same axis and vice versa.
func (c *Config) Overlay(name string, o Preset) (Preset, error) {
	p := c.WithDefaults(Preset{})
	if name != "" {
		var err error
		if p, err = c.Preset(name); err != nil {
			return Preset{}, err
		}
	}

	if o.Anchor != "" {
		p.Anchor = o.Anchor
	}
	switch {
	case o.Width != 0:
		p.Width, p.WidthPercent = o.Width, 0
	case o.WidthPercent != 0:
		p.Width, p.WidthPercent = 0, o.WidthPercent
	}
	switch {
	case o.Height != 0:
		p.Height, p.HeightPercent = o.Height, 0
	case o.HeightPercent != 0:
		p.Height, p.HeightPercent = 0, o.HeightPercent
	}
	if o.Monitor != "" {
		p.Monitor = o.Monitor
	}
	if o.Clamp != nil {
		p.Clamp = o.Clamp
	}
	if o.WorkArea != nil {
		p.WorkArea = o.WorkArea
	}

	if err := validatePreset("placement", p); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Request resolves the preset against monitor m. Percent sizes are taken from
// the logical target area.
func (p Preset) Request(m monitor.Monitor) (placement.Request, error) {
	anchor, err := placement.ParseAnchor(p.Anchor)
	if err != nil {
		return placement.Request{}, err
	}
	req := placement.Request{
		Anchor:      anchor,
		Size:        geometry.Size{Width: p.Width, Height: p.Height},
		Clamp:       p.Clamp != nil && *p.Clamp,
		UseWorkArea: p.WorkArea != nil && *p.WorkArea,
	}

	target := req.Target(m)
	if p.WidthPercent > 0 {
		req.Size.Width = target.Width * p.WidthPercent / 100
	}
	if p.HeightPercent > 0 {
		req.Size.Height = target.Height * p.HeightPercent / 100
	}
	return req, nil
}

// ValidationError points at the config key that failed validation.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	loc := ""
	if e.Source.Kind == SourceFile && e.Source.File != "" {
		loc = fmt.Sprintf("%s:%d:%d: ", e.Source.File, e.Source.Line, e.Source.Column)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s%s: %v", loc, e.Path, e.Err)
	}
	return fmt.Sprintf("%s%v", loc, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validate reports the first problem in the configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendX11, BackendStatic:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, static")}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return &ValidationError{Path: "logging.format", Err: err}
	}
	if c.DPI.ReferenceDPI <= 0 {
		return &ValidationError{Path: "dpi.reference_dpi", Err: fmt.Errorf("reference_dpi must be > 0")}
	}

	if err := validatePreset("placement", c.Placement); err != nil {
		return err
	}
	for _, name := range c.PresetNames() {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "presets", Err: fmt.Errorf("presets contains an empty name")}
		}
		if err := validatePreset("presets."+name, c.Presets[name]); err != nil {
			return err
		}
	}

	sequences := make([]string, 0, len(c.Hotkeys))
	for seq := range c.Hotkeys {
		sequences = append(sequences, seq)
	}
	sort.Strings(sequences)
	for _, seq := range sequences {
		name := c.Hotkeys[seq]
		if name == "" {
			continue
		}
		if _, err := c.Preset(name); err != nil {
			return &ValidationError{Path: "hotkeys." + seq, Err: err}
		}
	}

	if !slices.Contains(pickerBackends, strings.ToLower(c.Picker.Backend)) {
		return &ValidationError{Path: "picker.backend", Err: fmt.Errorf("backend must be one of: %s", strings.Join(pickerBackends, ", "))}
	}

	return c.Static.validate()
}

func validatePreset(path string, p Preset) error {
	if p.Anchor != "" {
		if _, err := placement.ParseAnchor(p.Anchor); err != nil {
			return &ValidationError{Path: path + ".anchor", Err: err}
		}
	}
	if p.Width < 0 || p.Height < 0 {
		return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be >= 0")}
	}
	if p.Width > 0 && p.WidthPercent > 0 {
		return &ValidationError{Path: path, Err: fmt.Errorf("width and width_percent are mutually exclusive")}
	}
	if p.Height > 0 && p.HeightPercent > 0 {
		return &ValidationError{Path: path, Err: fmt.Errorf("height and height_percent are mutually exclusive")}
	}
	if p.WidthPercent < 0 || p.WidthPercent > 100 {
		return &ValidationError{Path: path + ".width_percent", Err: fmt.Errorf("width_percent must be between 0 and 100")}
	}
	if p.HeightPercent < 0 || p.HeightPercent > 100 {
		return &ValidationError{Path: path + ".height_percent", Err: fmt.Errorf("height_percent must be between 0 and 100")}
	}
	return nil
}

func (s StaticTopology) validate() error {
	seen := make(map[string]struct{}, len(s.Monitors))
	primaries := 0
	for i, m := range s.Monitors {
		path := fmt.Sprintf("static.monitors[%d]", i)
		if strings.TrimSpace(m.Name) == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("name is required")}
		}
		if _, dup := seen[m.Name]; dup {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("duplicate monitor name %q", m.Name)}
		}
		seen[m.Name] = struct{}{}
		if m.Bounds.Empty() {
			return &ValidationError{Path: path + ".bounds", Err: fmt.Errorf("bounds must have a positive width and height")}
		}
		if m.DPI < 0 {
			return &ValidationError{Path: path + ".dpi", Err: fmt.Errorf("dpi must be >= 0")}
		}
		if m.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return &ValidationError{Path: "static.monitors", Err: fmt.Errorf("at most one monitor may be primary")}
	}
	if s.ActiveWindow != 0 {
		if _, ok := s.Windows[s.ActiveWindow]; !ok {
			return &ValidationError{Path: "static.active_window", Err: fmt.Errorf("window %d is not listed in static.windows", s.ActiveWindow)}
		}
	}
	ids := make([]uint32, 0, len(s.WindowTypes))
	for id := range s.WindowTypes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if _, ok := s.Windows[id]; !ok {
			return &ValidationError{Path: fmt.Sprintf("static.window_types.%d", id), Err: fmt.Errorf("window %d is not listed in static.windows", id)}
		}
	}
	if s.VirtualScreen.Width < 0 || s.VirtualScreen.Height < 0 {
		return &ValidationError{Path: "static.virtual_screen", Err: fmt.Errorf("virtual_screen must be >= 0")}
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

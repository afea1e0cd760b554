// Package monitor models the host display topology: one immutable descriptor
// per physical monitor, built fresh on every enumeration.
package monitor

import (
	"github.com/1broseidon/screenplace/internal/geometry"
)

// Monitor describes one physical display at the time it was enumerated.
// Descriptors are snapshots; do not keep them across display configuration changes.
type Monitor struct {
	handle     Handle
	bounds     geometry.Rect
	primary    bool
	deviceName string
	scale      float64
	synthetic  bool
	query      DisplayQuery
}

// Handle returns the monitor identity.
func (m Monitor) Handle() Handle { return m.handle }

// Bounds returns the monitor rectangle in physical pixels.
func (m Monitor) Bounds() geometry.Rect { return m.bounds }

// IsPrimary reports whether the host designates this monitor as primary.
func (m Monitor) IsPrimary() bool { return m.primary }

// DeviceName returns the host-assigned device identifier.
func (m Monitor) DeviceName() string { return m.deviceName }

// ScaleFactor returns the effective DPI divided by 96.
func (m Monitor) ScaleFactor() float64 { return m.scale }

// Synthetic reports whether this is the stand-in descriptor used on hosts
// without multi-monitor support.
func (m Monitor) Synthetic() bool { return m.synthetic }

// Equal reports whether m and o refer to the same physical monitor.
func (m Monitor) Equal(o Monitor) bool { return m.handle == o.handle }

// LogicalBounds returns Bounds divided by the scale factor.
func (m Monitor) LogicalBounds() geometry.LogicalRect {
	return geometry.ToLogical(m.bounds, m.scale)
}

// WorkingArea returns the monitor rectangle minus taskbars and docks, in pixels.
// It queries the host on every call, so it follows panels that appear or move.
// When the query fails the full monitor bounds are returned.
func (m Monitor) WorkingArea() geometry.Rect {
	if m.query == nil {
		return m.bounds
	}

	var (
		work geometry.Rect
		err  error
	)
	if m.synthetic {
		work, err = m.query.WorkArea()
	} else {
		var info Info
		info, err = m.query.MonitorInfo(m.handle)
		work = info.WorkArea
	}
	if err != nil || work.Empty() {
		return m.bounds
	}
	return work
}

// LogicalWorkingArea returns WorkingArea divided by the scale factor.
func (m Monitor) LogicalWorkingArea() geometry.LogicalRect {
	return geometry.ToLogical(m.WorkingArea(), m.scale)
}

// Summary is a serialisable view of a Monitor.
type Summary struct {
	Handle        uint64               `json:"handle" yaml:"handle"`
	DeviceName    string               `json:"device_name" yaml:"device_name"`
	Primary       bool                 `json:"primary" yaml:"primary"`
	Synthetic     bool                 `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
	ScaleFactor   float64              `json:"scale_factor" yaml:"scale_factor"`
	Bounds        geometry.Rect        `json:"bounds" yaml:"bounds"`
	WorkingArea   geometry.Rect        `json:"working_area" yaml:"working_area"`
	LogicalBounds geometry.LogicalRect `json:"logical_bounds" yaml:"logical_bounds"`
}

// Summary captures the descriptor, including a fresh working area.
func (m Monitor) Summary() Summary {
	return Summary{
		Handle:        uint64(m.handle),
		DeviceName:    m.deviceName,
		Primary:       m.primary,
		Synthetic:     m.synthetic,
		ScaleFactor:   m.scale,
		Bounds:        m.bounds,
		WorkingArea:   m.WorkingArea(),
		LogicalBounds: m.LogicalBounds(),
	}
}

package mcp

import (
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
)

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Backend      string            `json:"backend"`
	MultiMonitor bool              `json:"multi_monitor"`
	Monitors     []monitor.Summary `json:"monitors"`
}

// MonitorAtInput is the input for the monitor_at tool.
type MonitorAtInput struct {
	X       float64 `json:"x" jsonschema:"required,Horizontal position on the virtual screen"`
	Y       float64 `json:"y" jsonschema:"required,Vertical position on the virtual screen"`
	Logical bool    `json:"logical,omitempty" jsonschema:"When true, x and y are DPI-independent units instead of physical pixels"`
}

// MonitorAtOutput is the output for the monitor_at tool.
type MonitorAtOutput struct {
	Monitor monitor.Summary `json:"monitor"`
}

// PlacementInput describes a placement request. Unset fields come from the
// named preset, then from the configured placement defaults.
type PlacementInput struct {
	Preset        string  `json:"preset,omitempty" jsonschema:"Preset name from config, or an anchor name"`
	Anchor        string  `json:"anchor,omitempty" jsonschema:"One of the nine anchors (e.g. center, top-left, right)"`
	Width         float64 `json:"width,omitempty" jsonschema:"Width in logical units"`
	Height        float64 `json:"height,omitempty" jsonschema:"Height in logical units"`
	WidthPercent  float64 `json:"width_percent,omitempty" jsonschema:"Width as a percent of the target area (0-100)"`
	HeightPercent float64 `json:"height_percent,omitempty" jsonschema:"Height as a percent of the target area (0-100)"`
	Monitor       string  `json:"monitor,omitempty" jsonschema:"primary, pointer, active, or a device name (default: active)"`
	Clamp         *bool   `json:"clamp,omitempty" jsonschema:"Keep the window inside the target area"`
	WorkArea      *bool   `json:"work_area,omitempty" jsonschema:"Place within the working area instead of the full monitor"`
}

// ComputePlacementInput is the input for the compute_placement tool.
type ComputePlacementInput struct {
	PlacementInput
}

// PlaceWindowInput is the input for the place_window tool.
type PlaceWindowInput struct {
	PlacementInput
	Window uint32 `json:"window,omitempty" jsonschema:"X window id (default: the active window)"`
}

// PlacementOutput is the output for compute_placement and place_window.
type PlacementOutput struct {
	Placement platform.Placement `json:"placement"`
}

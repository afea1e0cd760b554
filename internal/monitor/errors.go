package monitor

import "errors"

var (
	// ErrNoPrimaryDisplay implies no enumerated monitor carries the primary flag.
	ErrNoPrimaryDisplay = errors.New("no primary display")

	// ErrDpiQueryFailed implies the per-monitor DPI lookup failed. It is absorbed
	// by the enumerator, which falls back to a scale factor of 1.
	ErrDpiQueryFailed = errors.New("dpi query failed")

	// ErrDegenerateEnumeration implies the host claims multi-monitor support but
	// enumerated no usable monitor. It is absorbed by falling back to the
	// synthetic single-display descriptor.
	ErrDegenerateEnumeration = errors.New("multi-monitor host enumerated no displays")

	// ErrMonitorNotFound implies no monitor matched a device name or selector.
	ErrMonitorNotFound = errors.New("monitor not found")

	// ErrNoMonitor is returned by display queries when a lookup with
	// FallbackNone matched nothing.
	ErrNoMonitor = errors.New("no monitor at location")

	// ErrUnknownWindow implies the display query could not resolve a window's geometry.
	ErrUnknownWindow = errors.New("unknown window")
)

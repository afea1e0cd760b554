package monitor

import (
	"fmt"
	"strings"

	"github.com/1broseidon/screenplace/internal/geometry"
)

// Selectors understood by Enumerator.Select in addition to device names.
const (
	SelectPrimary = "primary"
	SelectPointer = "pointer"
	SelectActive  = "active"
)

// Locator reports where the user currently is. Backends implement it.
type Locator interface {
	ActiveWindow() (WindowHandle, error)
	PointerPosition() (geometry.Point, error)
}

// Select resolves a monitor selector: "primary", "pointer", "active" (the
// monitor holding the active window) or a device name. An empty selector
// means "active".
func (e *Enumerator) Select(selector string, loc Locator) (Monitor, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "", SelectActive:
		if loc == nil {
			return e.Primary()
		}
		w, err := loc.ActiveWindow()
		if err != nil {
			e.logger.Debug("no active window, using pointer", "error", err)
			return e.Select(SelectPointer, loc)
		}
		return e.FromWindow(w), nil
	case SelectPointer:
		if loc == nil {
			return e.Primary()
		}
		p, err := loc.PointerPosition()
		if err != nil {
			return Monitor{}, fmt.Errorf("pointer position: %w", err)
		}
		return e.FromPoint(p), nil
	case SelectPrimary:
		return e.Primary()
	default:
		return e.ByDeviceName(selector)
	}
}

package x11

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/screenplace/internal/monitor"
)

// dpiStep is the granularity physical DPI estimates are rounded to. EDID
// sizes are only accurate to a few millimetres.
const dpiStep = 24

// EffectiveDPI returns the DPI used to scale monitor h. Xft.dpi from the
// resource database wins; otherwise it is derived from the output's physical
// size.
func (c *Connection) EffectiveDPI(h monitor.Handle) (int, int, error) {
	if dpi, ok := c.xftDPI(); ok {
		return dpi, dpi, nil
	}

	hd, err := c.findHead(h)
	if err != nil {
		return 0, 0, err
	}
	dpiX, okX := physicalDPI(hd.bounds.Width, hd.mmWidth)
	dpiY, okY := physicalDPI(hd.bounds.Height, hd.mmHeight)
	if !okX || !okY {
		return 0, 0, fmt.Errorf("%w: %s reports no physical size", monitor.ErrDpiQueryFailed, hd.name)
	}
	return dpiX, dpiY, nil
}

func (c *Connection) xftDPI() (int, bool) {
	resources, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.Root, "RESOURCE_MANAGER"))
	if err != nil {
		return 0, false
	}
	return parseXftDPI(resources)
}

// parseXftDPI finds the Xft.dpi entry in an X resource database string.
func parseXftDPI(resources string) (int, bool) {
	sc := bufio.NewScanner(strings.NewReader(resources))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || dpi <= 0 {
			return 0, false
		}
		return int(math.Round(dpi)), true
	}
	return 0, false
}

// physicalDPI estimates DPI from a pixel extent and its size in millimetres.
func physicalDPI(px int, mm uint32) (int, bool) {
	if px <= 0 || mm == 0 {
		return 0, false
	}
	raw := float64(px) * 25.4 / float64(mm)
	return quantizeDPI(raw), true
}

func quantizeDPI(dpi float64) int {
	q := int(math.Round(dpi/dpiStep)) * dpiStep
	if q < dpiStep {
		return dpiStep
	}
	return q
}

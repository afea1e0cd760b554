package tui

import (
	"strings"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

type boxRunes struct {
	h, v, tl, tr, bl, br rune
}

var (
	singleBox = boxRunes{'─', '│', '┌', '┐', '└', '┘'}
	doubleBox = boxRunes{'═', '║', '╔', '╗', '╚', '╝'}
)

const targetRune = '▓'

// RenderMap draws the monitors scaled into a width x height character grid,
// the primary with a double border. target, when set, is filled in.
func RenderMap(ms []monitor.Summary, target *geometry.Rect, width, height int) []string {
	if len(ms) == 0 || width < 4 || height < 3 {
		return emptyCanvas(width, height)
	}

	extent := ms[0].Bounds
	for _, m := range ms[1:] {
		extent = extent.Union(m.Bounds)
	}
	if extent.Empty() {
		return emptyCanvas(width, height)
	}

	c := newCanvas(width, height)
	scale := func(r geometry.Rect) (x1, y1, x2, y2 int) {
		x1 = (r.X - extent.X) * (width - 1) / extent.Width
		y1 = (r.Y - extent.Y) * (height - 1) / extent.Height
		x2 = (r.Right() - extent.X) * (width - 1) / extent.Width
		y2 = (r.Bottom() - extent.Y) * (height - 1) / extent.Height
		return
	}

	for _, m := range ms {
		x1, y1, x2, y2 := scale(m.Bounds)
		box := singleBox
		if m.Primary {
			box = doubleBox
		}
		c.box(x1, y1, x2, y2, box)
	}

	if target != nil && !target.Empty() {
		x1, y1, x2, y2 := scale(*target)
		c.fill(x1+1, y1+1, x2-1, y2-1, targetRune)
	}

	for _, m := range ms {
		x1, y1, x2, _ := scale(m.Bounds)
		c.label(x1+1, y1+1, x2-1, m.DeviceName)
	}

	return c.lines()
}

type canvas [][]rune

func newCanvas(width, height int) canvas {
	c := make(canvas, height)
	for i := range c {
		c[i] = []rune(strings.Repeat(" ", width))
	}
	return c
}

func (c canvas) set(x, y int, r rune) {
	if y >= 0 && y < len(c) && x >= 0 && x < len(c[y]) {
		c[y][x] = r
	}
}

func (c canvas) box(x1, y1, x2, y2 int, b boxRunes) {
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x <= x2; x++ {
		c.set(x, y1, b.h)
		c.set(x, y2, b.h)
	}
	for y := y1; y <= y2; y++ {
		c.set(x1, y, b.v)
		c.set(x2, y, b.v)
	}
	c.set(x1, y1, b.tl)
	c.set(x2, y1, b.tr)
	c.set(x1, y2, b.bl)
	c.set(x2, y2, b.br)
}

func (c canvas) fill(x1, y1, x2, y2 int, r rune) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.set(x, y, r)
		}
	}
}

// label writes s from (x, y), cut at maxX.
func (c canvas) label(x, y, maxX int, s string) {
	for i, r := range []rune(s) {
		if x+i > maxX {
			return
		}
		c.set(x+i, y, r)
	}
}

func (c canvas) lines() []string {
	out := make([]string, len(c))
	for i, row := range c {
		out[i] = string(row)
	}
	return out
}

func emptyCanvas(width, height int) []string {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}

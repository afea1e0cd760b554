package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
	"github.com/1broseidon/screenplace/internal/tui"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTable draws a bordered table on terminals and tab-separated lines
// otherwise. highlight marks rows drawn in the accent colour.
func renderTable(w io.Writer, headers []string, rows [][]string, highlight func(row int) bool) {
	if !isTerminal(w) {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, r := range rows {
			fmt.Fprintln(w, strings.Join(r, "\t"))
		}
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case highlight != nil && highlight(row):
				return primaryStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

func printMonitors(w io.Writer, ms []monitor.Summary) {
	rows := make([][]string, len(ms))
	for i, m := range ms {
		primary := ""
		if m.Primary {
			primary = "*"
		}
		rows[i] = []string{
			m.DeviceName,
			primary,
			fmt.Sprintf("%.2f", m.ScaleFactor),
			m.Bounds.String(),
			m.WorkingArea.String(),
			m.LogicalBounds.String(),
		}
	}
	renderTable(w, []string{"DEVICE", "PRIMARY", "SCALE", "BOUNDS", "WORK AREA", "LOGICAL"}, rows, func(row int) bool {
		return row >= 0 && row < len(ms) && ms[row].Primary
	})
}

func printMonitor(w io.Writer, m monitor.Summary) {
	fmt.Fprintf(w, "device:       %s\n", m.DeviceName)
	fmt.Fprintf(w, "primary:      %v\n", m.Primary)
	if m.Synthetic {
		fmt.Fprintf(w, "synthetic:    true\n")
	}
	fmt.Fprintf(w, "scale:        %.2f\n", m.ScaleFactor)
	fmt.Fprintf(w, "bounds:       %s\n", m.Bounds)
	fmt.Fprintf(w, "working_area: %s\n", m.WorkingArea)
	fmt.Fprintf(w, "logical:      %s\n", m.LogicalBounds)
}

func printPlacement(w io.Writer, p platform.Placement) {
	if p.Window != 0 {
		fmt.Fprintf(w, "window:  0x%x\n", uint32(p.Window))
	}
	fmt.Fprintf(w, "monitor: %s (scale %.2f)\n", p.Monitor.DeviceName, p.Monitor.ScaleFactor)
	fmt.Fprintf(w, "anchor:  %s\n", p.Anchor)
	fmt.Fprintf(w, "logical: %s\n", p.Logical)
	fmt.Fprintf(w, "pixels:  %s\n", p.Pixels)
	fmt.Fprintf(w, "applied: %v\n", p.Applied)
}

func printPreview(w io.Writer, s *platform.Session, p platform.Placement) {
	all := s.Monitors.All()
	ms := make([]monitor.Summary, len(all))
	for i, m := range all {
		ms[i] = m.Summary()
	}
	fmt.Fprintln(w)
	for _, line := range tui.RenderMap(ms, &p.Pixels, 60, 16) {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

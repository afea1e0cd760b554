package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

func (a *app) monitorsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List attached monitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			all := s.Monitors.All()
			out := make([]monitor.Summary, len(all))
			for i, m := range all {
				out[i] = m.Summary()
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printMonitors(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) primaryCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "primary",
		Short: "Show the primary monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			m, err := s.Monitors.Primary()
			if err != nil {
				return err
			}
			return showMonitor(cmd, m.Summary(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) atCmd() *cobra.Command {
	var asJSON, logical bool
	cmd := &cobra.Command{
		Use:   "at X Y",
		Short: "Show the monitor containing a point",
		Long: `Show the monitor containing a point. Pixel points outside every monitor
resolve to the nearest one; logical points outside every monitor resolve to
the whole virtual screen.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[0], err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[1], err)
			}

			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var m monitor.Monitor
			if logical {
				m = s.Monitors.FromLogicalPoint(geometry.LogicalPoint{X: x, Y: y})
			} else {
				m = s.Monitors.FromPoint(geometry.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))})
			}
			return showMonitor(cmd, m.Summary(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&logical, "logical", false, "X and Y are logical units")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

type windowInfo struct {
	Window   uint32          `json:"window"`
	Geometry *geometry.Rect  `json:"geometry,omitempty"`
	Monitor  monitor.Summary `json:"monitor"`
}

func (a *app) windowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "window [ID]",
		Short: "Show the monitor holding a window (default: the active window)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var w monitor.WindowHandle
			if len(args) == 1 {
				if w, err = parseWindow(args[0]); err != nil {
					return err
				}
			} else if w, err = s.Backend.ActiveWindow(); err != nil {
				return err
			}

			info := windowInfo{
				Window:  uint32(w),
				Monitor: s.Monitors.FromWindow(w).Summary(),
			}
			if r, err := s.Backend.WindowGeometry(w); err == nil {
				info.Geometry = &r
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "window:       0x%x\n", info.Window)
			if info.Geometry != nil {
				fmt.Fprintf(out, "geometry:     %s\n", info.Geometry)
			}
			printMonitor(out, info.Monitor)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func showMonitor(cmd *cobra.Command, m monitor.Summary, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), m)
	}
	printMonitor(cmd.OutOrStdout(), m)
	return nil
}

// parseWindow accepts decimal or 0x-prefixed window ids.
func parseWindow(s string) (monitor.WindowHandle, error) {
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return monitor.WindowHandle(id), nil
}

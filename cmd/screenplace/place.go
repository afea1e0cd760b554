package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/placement"
	"github.com/1broseidon/screenplace/internal/platform"
)

type placeFlags struct {
	width, height               float64
	widthPercent, heightPercent float64
	monitor                     string
	clamp, workArea             bool
	window                      string
	dryRun                      bool
	preview                     bool
	asJSON                      bool
}

func (f *placeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.width, "width", 0, "width in logical units")
	fl.Float64Var(&f.height, "height", 0, "height in logical units")
	fl.Float64Var(&f.widthPercent, "width-percent", 0, "width as a percent of the target area")
	fl.Float64Var(&f.heightPercent, "height-percent", 0, "height as a percent of the target area")
	fl.StringVar(&f.monitor, "monitor", "", "target monitor: primary, pointer, active or a device name")
	fl.BoolVar(&f.clamp, "clamp", true, "keep the window inside the target area")
	fl.BoolVar(&f.workArea, "work-area", true, "place within the working area instead of the full monitor")
	fl.BoolVar(&f.asJSON, "json", false, "print JSON")
	fl.BoolVar(&f.preview, "preview", false, "draw the result on a map of the monitors")
}

// overlay turns the flags into preset overrides. Boolean flags only apply
// when given explicitly so the preset values survive.
func (f *placeFlags) overlay(cmd *cobra.Command, anchor string) config.Preset {
	p := config.Preset{
		Anchor:        anchor,
		Width:         f.width,
		Height:        f.height,
		WidthPercent:  f.widthPercent,
		HeightPercent: f.heightPercent,
		Monitor:       f.monitor,
	}
	if cmd.Flags().Changed("clamp") {
		p.Clamp = &f.clamp
	}
	if cmd.Flags().Changed("work-area") {
		p.WorkArea = &f.workArea
	}
	return p
}

func (a *app) placeCmd() *cobra.Command {
	f := &placeFlags{}
	cmd := &cobra.Command{
		Use:   "place ANCHOR",
		Short: "Compute a placement rectangle without moving anything",
		Long: `Compute where a window of the given size would go for ANCHOR on the
target monitor. Sizes default to the placement section of the config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.Config.Overlay("", f.overlay(cmd, args[0]))
			if err != nil {
				return err
			}
			placed, err := s.Compute(p)
			if err != nil {
				return err
			}
			if err := showPlacement(cmd, placed, f.asJSON); err != nil {
				return err
			}
			if f.preview && !f.asJSON {
				printPreview(cmd.OutOrStdout(), s, placed)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) applyCmd() *cobra.Command {
	f := &placeFlags{}
	cmd := &cobra.Command{
		Use:   "apply PRESET|ANCHOR",
		Short: "Move a window to a preset or anchor",
		Long: `Move and resize a window (default: the active window) to a preset from
the config, or to an anchor using the placement defaults. Flags override the
preset's fields. Maximized and fullscreen windows are restored first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var w monitor.WindowHandle
			if f.window != "" {
				if w, err = parseWindow(f.window); err != nil {
					return err
				}
			}

			p, err := s.Config.Overlay(args[0], f.overlay(cmd, ""))
			if err != nil {
				return err
			}

			var placed platform.Placement
			if f.dryRun {
				placed, err = s.ComputeFor(p, w)
			} else {
				placed, err = s.Apply(p, w)
			}
			if err != nil {
				return fmt.Errorf("apply %q: %w", args[0], err)
			}
			return showPlacement(cmd, placed, f.asJSON)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.window, "window", "", "window id, decimal or 0x-prefixed (default: the active window)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "compute the placement without moving the window")
	return cmd
}

func anchorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anchors",
		Short: "List placement anchors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, a := range placement.Anchors() {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
		},
	}
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List configured presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.loadConfig()
			if err != nil {
				return err
			}
			cfg := res.Config

			bound := make(map[string][]string)
			for seq, name := range cfg.Hotkeys {
				if name != "" {
					bound[name] = append(bound[name], seq)
				}
			}

			names := cfg.PresetNames()
			rows := make([][]string, len(names))
			for i, name := range names {
				p := cfg.WithDefaults(cfg.Presets[name])
				source := "config"
				if config.IsBuiltinPreset(name) {
					source = "builtin"
				}
				keys := bound[name]
				sort.Strings(keys)
				rows[i] = []string{name, p.Anchor, formatSize(p), p.Monitor, strings.Join(keys, " "), source}
			}
			renderTable(cmd.OutOrStdout(), []string{"NAME", "ANCHOR", "SIZE", "MONITOR", "HOTKEYS", "SOURCE"}, rows, nil)
			return nil
		},
	}
}

func formatSize(p config.Preset) string {
	dim := func(v, pct float64) string {
		if pct > 0 {
			return fmt.Sprintf("%g%%", pct)
		}
		return fmt.Sprintf("%g", v)
	}
	if placement.Anchor(p.Anchor) == placement.AnchorMaximize {
		return "full"
	}
	return dim(p.Width, p.WidthPercent) + "x" + dim(p.Height, p.HeightPercent)
}

func showPlacement(cmd *cobra.Command, p platform.Placement, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	printPlacement(cmd.OutOrStdout(), p)
	return nil
}

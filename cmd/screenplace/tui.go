package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/tui"
)

func (a *app) tuiCmd() *cobra.Command {
	var window string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse presets with a live preview and apply one",
		Long: `Open a full-screen preset browser. Moving the selection previews where the
target window would land; enter applies the preset, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var w monitor.WindowHandle
			if window != "" {
				if w, err = parseWindow(window); err != nil {
					return err
				}
			}
			return tui.Run(s, w)
		},
	}
	cmd.Flags().StringVar(&window, "window", "", "window id, decimal or 0x-prefixed (default: the active window)")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/screenplace/internal/picker"
)

func (a *app) pickCmd() *cobra.Command {
	var launcher string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a preset from a rofi/dmenu menu and apply it",
		Long: `Show the presets and anchors in an external menu launcher and apply the
choice to the window that was active when the menu opened. Bind this to a key
in your window manager for a searchable preset list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if launcher == "" {
				launcher = s.Config.Picker.Backend
			}
			b, err := picker.NewBackend(launcher)
			if err != nil {
				return err
			}

			// The launcher takes focus, so resolve the target first.
			w, err := s.Backend.ActiveWindow()
			if err != nil {
				return fmt.Errorf("no window to place: %w", err)
			}

			name, err := picker.Choose(b, s.Config)
			if picker.IsCancelled(err) {
				return nil
			}
			if err != nil {
				return err
			}

			placed, err := s.ApplyPreset(name, w)
			if err != nil {
				return err
			}
			return showPlacement(cmd, placed, asJSON)
		},
	}
	cmd.Flags().StringVar(&launcher, "launcher", "", "rofi, fuzzel, wofi, dmenu or auto (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

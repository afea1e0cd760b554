package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/daemon"
	"github.com/1broseidon/screenplace/internal/ipc"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
	"github.com/1broseidon/screenplace/internal/runtimepath"
)

func (a *app) daemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the hotkey daemon in the foreground",
		Long: `Run the hotkey daemon in the foreground. Hotkeys from the config are
grabbed on the X server and CLI requests are served on a unix socket
($SCREENPLACE_SOCKET, default $XDG_RUNTIME_DIR/screenplace.sock).
SIGHUP reloads the config.`,
		Args: cobra.NoArgs,
		RunE: a.runDaemon,
	}
	cmd.AddCommand(a.daemonStatusCmd(), a.daemonReloadCmd(), a.daemonApplyCmd(), a.daemonMonitorsCmd())
	return cmd
}

func (a *app) runDaemon(cmd *cobra.Command, args []string) error {
	res, err := a.loadConfig()
	if err != nil {
		return err
	}
	cfg := res.Config
	logger, err := a.newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	socket, err := runtimepath.SocketPath()
	if err != nil {
		return err
	}

	backend, err := platform.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open display backend: %w", err)
	}
	defer backend.Close()

	d := daemon.New(cfg, backend, daemon.Options{
		SocketPath: socket,
		ConfigPath: a.configPath,
		Load: func() (*config.Config, error) {
			res, err := a.loadConfig()
			if err != nil {
				return nil, err
			}
			return res.Config, nil
		},
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := d.Reload(); err != nil {
					logger.Error("reload failed", "error", err)
				}
			}
		}
	}()

	return d.Run(ctx)
}

func daemonClient() (*ipc.Client, error) {
	socket, err := runtimepath.SocketPath()
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(socket), nil
}

func (a *app) daemonStatusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := daemonClient()
			if err != nil {
				return err
			}
			status, err := client.GetStatus()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "daemon_running:  %v\n", status.DaemonRunning)
			fmt.Fprintf(out, "backend:         %s\n", status.Backend)
			fmt.Fprintf(out, "config:          %s\n", status.ConfigPath)
			fmt.Fprintf(out, "hotkeys_bound:   %d\n", status.HotkeysBound)
			fmt.Fprintf(out, "placement_count: %d\n", status.PlacementCount)
			fmt.Fprintf(out, "uptime_seconds:  %d\n", status.UptimeSeconds)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) daemonReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the running daemon to reload its config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := daemonClient()
			if err != nil {
				return err
			}
			if err := client.Reload(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config reloaded")
			return nil
		},
	}
}

func (a *app) daemonApplyCmd() *cobra.Command {
	var window string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "apply PRESET|ANCHOR",
		Short: "Apply a preset through the running daemon",
		Long: `Ask the daemon to apply a preset with its loaded configuration. This avoids
opening a new X connection per placement, which suits scripts and window
manager bindings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w monitor.WindowHandle
			if window != "" {
				var err error
				if w, err = parseWindow(window); err != nil {
					return err
				}
			}
			client, err := daemonClient()
			if err != nil {
				return err
			}
			placed, err := client.ApplyPreset(args[0], uint32(w))
			if err != nil {
				return err
			}
			return showPlacement(cmd, *placed, asJSON)
		},
	}
	cmd.Flags().StringVar(&window, "window", "", "window id, decimal or 0x-prefixed (default: the active window)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) daemonMonitorsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List monitors as the running daemon sees them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := daemonClient()
			if err != nil {
				return err
			}
			data, err := client.GetMonitors()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), data.Monitors)
			}
			printMonitors(cmd.OutOrStdout(), data.Monitors)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

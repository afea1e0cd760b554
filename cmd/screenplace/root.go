package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/platform"
)

// Version is set during build.
var Version = "0.1.0-dev"

// globalFlags can also be set through SCREENPLACE_<NAME> environment
// variables, e.g. SCREENPLACE_LOG_LEVEL.
var globalFlags = []string{"config", "backend", "display", "log-level", "log-format"}

type app struct {
	v          *viper.Viper
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "screenplace",
		Short: "Monitor-aware window placement",
		Long: `screenplace enumerates the attached monitors, converts between physical
pixels and DPI-independent units, and moves windows to anchored positions
on a chosen monitor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ~/.config/screenplace/config.yaml)")
	pf.String("backend", "", "display backend: auto, x11 or static")
	pf.String("display", "", "X display to connect to (default $DISPLAY)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text, json or logfmt")
	for _, name := range globalFlags {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}
	a.v.SetEnvPrefix("SCREENPLACE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.monitorsCmd(),
		a.primaryCmd(),
		a.atCmd(),
		a.windowCmd(),
		a.placeCmd(),
		a.applyCmd(),
		anchorsCmd(),
		a.presetsCmd(),
		a.pickCmd(),
		a.tuiCmd(),
		a.daemonCmd(),
		a.mcpCmd(),
		a.configCmd(),
	)
	return root
}

// loadConfig reads the config file and applies flag and environment
// overrides on top.
func (a *app) loadConfig() (*config.LoadResult, error) {
	path := a.v.GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	a.configPath = path

	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	if b := a.v.GetString("backend"); b != "" {
		cfg.Backend = config.Backend(strings.ToLower(b))
	}
	if d := a.v.GetString("display"); d != "" {
		cfg.Display = d
	}
	if l := a.v.GetString("log-level"); l != "" {
		cfg.Logging.Level = l
	}
	if f := a.v.GetString("log-format"); f != "" {
		cfg.Logging.Format = f
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid override: %w", err)
	}
	return res, nil
}

func (a *app) newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Prefix: "screenplace",
	})
}

// openSession loads the config and opens the configured backend. The caller
// closes the session.
func (a *app) openSession(cmd *cobra.Command) (*platform.Session, error) {
	res, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := a.newLogger(cmd, res.Config)
	if err != nil {
		return nil, err
	}
	return platform.NewSession(res.Config, logger)
}

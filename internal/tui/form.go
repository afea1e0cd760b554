package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/placement"
)

// InitAnswers holds the values collected by the setup form. Sizes stay
// strings so huh inputs can bind to them.
type InitAnswers struct {
	Backend  string
	Anchor   string
	Width    string
	Height   string
	Launcher string
}

// NewInitAnswers seeds the answers from cfg.
func NewInitAnswers(cfg *config.Config) *InitAnswers {
	return &InitAnswers{
		Backend:  string(cfg.Backend),
		Anchor:   cfg.Placement.Anchor,
		Width:    strconv.FormatFloat(cfg.Placement.Width, 'f', -1, 64),
		Height:   strconv.FormatFloat(cfg.Placement.Height, 'f', -1, 64),
		Launcher: cfg.Picker.Backend,
	}
}

// Form returns the huh form bound to a.
func (a *InitAnswers) Form() *huh.Form {
	anchors := make([]string, 0, len(placement.Anchors()))
	for _, an := range placement.Anchors() {
		anchors = append(anchors, string(an))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display backend").
				Options(huh.NewOptions(string(config.BackendAuto), string(config.BackendX11), string(config.BackendStatic))...).
				Value(&a.Backend),
			huh.NewSelect[string]().
				Title("Menu launcher for screenplace pick").
				Options(huh.NewOptions("auto", "rofi", "fuzzel", "wofi", "dmenu")...).
				Value(&a.Launcher),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default anchor").
				Options(huh.NewOptions(anchors...)...).
				Value(&a.Anchor),
			huh.NewInput().
				Title("Default width (logical px)").
				Value(&a.Width).
				Validate(validateSize),
			huh.NewInput().
				Title("Default height (logical px)").
				Value(&a.Height).
				Validate(validateSize),
		),
	)
}

// Apply writes the answers into cfg and validates the result.
func (a *InitAnswers) Apply(cfg *config.Config) error {
	w, err := parseSize(a.Width)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	h, err := parseSize(a.Height)
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}

	cfg.Backend = config.Backend(a.Backend)
	cfg.Picker.Backend = a.Launcher
	cfg.Placement.Anchor = a.Anchor
	cfg.Placement.Width, cfg.Placement.WidthPercent = w, 0
	cfg.Placement.Height, cfg.Placement.HeightPercent = h, 0
	return cfg.Validate()
}

// RunInit asks the setup questions on the terminal and applies the answers.
func RunInit(cfg *config.Config) error {
	a := NewInitAnswers(cfg)
	if err := a.Form().Run(); err != nil {
		return err
	}
	return a.Apply(cfg)
}

func validateSize(s string) error {
	_, err := parseSize(s)
	return err
}

func parseSize(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be > 0")
	}
	return v, nil
}

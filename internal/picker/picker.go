// Package picker shows presets in an external dmenu-style launcher (rofi,
// fuzzel, wofi or dmenu) and returns the chosen one.
package picker

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the menu without choosing.
var ErrCancelled = errors.New("picker cancelled")

// Item is one row of the menu.
type Item struct {
	Label    string
	Value    string // returned on selection; empty for headers
	Icon     string
	Meta     string // hidden search keywords
	IsHeader bool   // non-selectable section title
}

// Backend shows items and returns the selected one.
type Backend interface {
	Show(prompt string, items []Item) (Item, error)
	Name() string
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// supported lists the launchers in detection order.
var supported = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// Detect returns the first supported launcher found in PATH.
func Detect() (string, error) {
	for _, name := range supported {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no menu launcher found in PATH (looked for: %s)", strings.Join(supported, ", "))
}

// NewBackend returns the launcher called name. "auto" or "" detects one.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := Detect()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	kind, ok := kinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown menu launcher %q (expected: auto, %s)", name, strings.Join(supported, ", "))
	}
	if _, err := lookPath(name); err != nil {
		return nil, fmt.Errorf("menu launcher %q not found in PATH", name)
	}
	return newLauncher(kind), nil
}

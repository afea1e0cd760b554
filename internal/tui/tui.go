// Package tui is the interactive preset browser and the config setup form.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
)

// Run opens the preset browser on the alternate screen. It needs a TTY on
// both stdin and stdout.
func Run(s *platform.Session, w monitor.WindowHandle) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	_, err := tea.NewProgram(NewModel(s, w), tea.WithAltScreen()).Run()
	return err
}

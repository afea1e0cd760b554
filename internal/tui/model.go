package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/picker"
	"github.com/1broseidon/screenplace/internal/platform"
)

const (
	listWidth     = 34
	defaultWidth  = 100
	defaultHeight = 24
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	paneStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// presetItem is a list row for one preset or anchor.
type presetItem struct {
	name  string
	label string
	meta  string
}

func (i presetItem) Title() string       { return i.label }
func (i presetItem) Description() string { return i.meta }
func (i presetItem) FilterValue() string { return i.name }

// Model browses presets, previews where each would put the target window
// and applies the selection on enter.
type Model struct {
	session  *platform.Session
	window   monitor.WindowHandle
	list     list.Model
	monitors []monitor.Summary

	preview *platform.Placement
	status  string
	err     error

	width, height int
}

// NewModel builds the browser over s. A zero window targets the window that
// is active now.
func NewModel(s *platform.Session, w monitor.WindowHandle) Model {
	var items []list.Item
	for _, it := range picker.Items(s.Config) {
		if it.IsHeader || it.Value == "" {
			continue
		}
		items = append(items, presetItem{name: it.Value, label: it.Label, meta: it.Meta})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(items, delegate, listWidth, defaultHeight-2)
	l.Title = "Presets"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	all := s.Monitors.All()
	summaries := make([]monitor.Summary, len(all))
	for i, m := range all {
		summaries[i] = m.Summary()
	}

	m := Model{
		session:  s,
		window:   w,
		list:     l,
		monitors: summaries,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if m.window == 0 {
		if active, err := s.Backend.ActiveWindow(); err == nil {
			m.window = active
		}
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(listWidth, max(msg.Height-2, 4))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.apply()
			return m, nil
		}
	}

	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.list.Index() != prev {
		m.status = ""
		m.refresh()
	}
	return m, cmd
}

func (m Model) View() string {
	right := m.previewPane(max(m.width-listWidth-4, 10), max(m.height-6, 3))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), paneStyle.Render(right))

	footer := dimStyle.Render("↑/↓ select • enter apply • q quit")
	switch {
	case m.err != nil:
		footer = errorStyle.Render(m.err.Error())
	case m.status != "":
		footer = statusStyle.Render(m.status)
	}
	return body + "\n" + footer
}

func (m Model) previewPane(width, height int) string {
	var b strings.Builder
	if m.window != 0 {
		fmt.Fprintf(&b, "window 0x%x\n", uint32(m.window))
	} else {
		b.WriteString("no active window\n")
	}

	var lines []string
	if m.preview != nil {
		lines = RenderMap(m.monitors, &m.preview.Pixels, width, height)
	} else {
		lines = RenderMap(m.monitors, nil, width, height)
	}
	b.WriteString(strings.Join(lines, "\n"))

	if p := m.preview; p != nil {
		fmt.Fprintf(&b, "\n%s  %s\n", p.Monitor.DeviceName, p.Pixels)
		b.WriteString(dimStyle.Render(fmt.Sprintf("logical %s  scale %.2f", p.Logical, p.Monitor.ScaleFactor)))
	}
	return b.String()
}

// Selected returns the highlighted preset name.
func (m Model) Selected() string {
	if it, ok := m.list.SelectedItem().(presetItem); ok {
		return it.name
	}
	return ""
}

// Preview returns the placement computed for the highlighted preset.
func (m Model) Preview() *platform.Placement { return m.preview }

// Status returns the last result message.
func (m Model) Status() string { return m.status }

// Err returns the last error.
func (m Model) Err() error { return m.err }

func (m *Model) refresh() {
	m.preview, m.err = nil, nil
	name := m.Selected()
	if name == "" {
		return
	}
	p, err := m.session.Config.Preset(name)
	if err != nil {
		m.err = err
		return
	}
	if m.window == 0 {
		placed, err := m.session.Compute(p)
		m.preview, m.err = &placed, err
	} else {
		placed, err := m.session.ComputeFor(p, m.window)
		m.preview, m.err = &placed, err
	}
	if m.err != nil {
		m.preview = nil
	}
}

func (m *Model) apply() {
	name := m.Selected()
	if name == "" {
		return
	}
	if m.window == 0 {
		m.err = fmt.Errorf("no window to place")
		return
	}
	placed, err := m.session.ApplyPreset(name, m.window)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("placed 0x%x on %s at %s", uint32(placed.Window), placed.Monitor.DeviceName, placed.Pixels)
}

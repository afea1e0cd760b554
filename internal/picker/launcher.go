package picker

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type kind int

// Kinds index supported.
const (
	kindRofi kind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

var kinds = map[string]kind{
	"rofi":   kindRofi,
	"fuzzel": kindFuzzel,
	"wofi":   kindWofi,
	"dmenu":  kindDmenu,
}

// runFunc executes a launcher with stdin and returns its stdout.
type runFunc func(name string, args []string, stdin string) (stdout string, err error)

// launcher drives every dmenu-compatible program. rofi and fuzzel report the
// selected row index; wofi and dmenu echo the label back.
type launcher struct {
	command string
	kind    kind
	run     runFunc
}

func newLauncher(k kind) *launcher {
	return &launcher{command: supported[k], kind: k, run: runCommand}
}

func (l *launcher) Name() string { return l.command }

func (l *launcher) indexOutput() bool { return l.kind == kindRofi || l.kind == kindFuzzel }

func (l *launcher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("picker: no items to show")
	}

	display := l.disambiguate(items)
	out, err := l.run(l.command, l.args(prompt, display), l.input(display))
	selection := strings.TrimSpace(out)
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}

	item, err := l.parse(selection, display)
	if err != nil {
		return Item{}, err
	}
	if item.IsHeader {
		return Item{}, ErrCancelled
	}
	return item, nil
}

func (l *launcher) args(prompt string, items []Item) []string {
	switch l.kind {
	case kindRofi:
		args := []string{"-dmenu", "-i", "-p", prompt, "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
		for i, it := range items {
			if !it.IsHeader {
				args = append(args, "-selected-row", strconv.Itoa(i))
				break
			}
		}
		return args
	case kindFuzzel:
		return []string{"--dmenu", "--prompt", prompt, "--index"}
	case kindWofi:
		return []string{"--dmenu", "--prompt", prompt, "--allow-markup"}
	default:
		return []string{"-i", "-p", prompt}
	}
}

// disambiguate suffixes repeated labels for launchers that echo the label.
func (l *launcher) disambiguate(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	if l.indexOutput() {
		return out
	}
	seen := make(map[string]int)
	for i := range out {
		key := sanitize(out[i].Label)
		if out[i].IsHeader || key == "" {
			continue
		}
		if n := seen[key]; n > 0 {
			out[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
		}
		seen[key]++
	}
	return out
}

func (l *launcher) input(items []Item) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = l.row(it)
	}
	return strings.Join(lines, "\n")
}

// row renders one item. rofi takes row options after a single NUL, as
// \x1f-separated key/value pairs.
func (l *launcher) row(it Item) string {
	label := l.label(it)
	if l.kind == kindRofi && it.IsHeader {
		label = "<b>" + label + "</b>"
	}
	if l.kind != kindRofi {
		return label
	}

	var attrs []string
	if it.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if it.Icon != "" {
		attrs = append(attrs, "icon", sanitizeField(it.Icon))
	}
	if it.Meta != "" {
		attrs = append(attrs, "meta", sanitizeField(it.Meta))
	}
	if len(attrs) == 0 {
		return label
	}
	return label + "\x00" + strings.Join(attrs, "\x1f")
}

// label is the row text without row options. Markup launchers get it
// escaped, and wofi echoes it back that way.
func (l *launcher) label(it Item) string {
	label := sanitize(it.Label)
	if l.kind == kindRofi || l.kind == kindWofi {
		label = html.EscapeString(label)
	}
	return label
}

func (l *launcher) parse(selection string, items []Item) (Item, error) {
	if l.indexOutput() {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("picker: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, it := range items {
		if l.label(it) == selection {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("picker: unknown selection %q", selection)
}

func runCommand(name string, args []string, stdin string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return string(out), fmt.Errorf("%w: %s", err, msg)
		}
	}
	return string(out), err
}

// isCancelExit matches the "no selection" (1) and Ctrl+C (130) exits.
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 1 || code == 130
}

func sanitize(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeField(v string) string {
	v = strings.ReplaceAll(v, "\x00", " ")
	v = strings.ReplaceAll(v, "\x1f", " ")
	return sanitize(v)
}

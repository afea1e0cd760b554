package picker

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/placement"
)

// Items builds the menu: configured presets first, then the bare anchors.
// Each row's value is a name accepted by config.Preset.
func Items(cfg *config.Config) []Item {
	keys := make(map[string][]string)
	for seq, name := range cfg.Hotkeys {
		if name != "" {
			keys[name] = append(keys[name], seq)
		}
	}

	items := []Item{{Label: "Presets", IsHeader: true}}
	for _, name := range cfg.PresetNames() {
		p := cfg.WithDefaults(cfg.Presets[name])
		label := name
		if seqs := keys[name]; len(seqs) > 0 {
			sort.Strings(seqs)
			label = fmt.Sprintf("%s  [%s]", name, strings.Join(seqs, ", "))
		}
		items = append(items, Item{
			Label: label,
			Value: name,
			Icon:  iconFor(placement.Anchor(p.Anchor)),
			Meta:  p.Anchor + " " + p.Monitor,
		})
	}

	items = append(items, Item{Label: "Anchors", IsHeader: true})
	for _, a := range placement.Anchors() {
		if _, shadowed := cfg.Presets[string(a)]; shadowed {
			continue
		}
		items = append(items, Item{
			Label: string(a),
			Value: string(a),
			Icon:  iconFor(a),
			Meta:  "anchor",
		})
	}
	return items
}

// Choose shows the menu and returns the chosen preset or anchor name.
func Choose(b Backend, cfg *config.Config) (string, error) {
	item, err := b.Show("place", Items(cfg))
	if err != nil {
		return "", err
	}
	if item.Value == "" {
		return "", ErrCancelled
	}
	return item.Value, nil
}

// IsCancelled reports whether err means the user dismissed the menu.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }

func iconFor(a placement.Anchor) string {
	switch a {
	case placement.AnchorMaximize:
		return "view-fullscreen"
	case placement.AnchorCenter:
		return "zoom-fit-best"
	default:
		return "window-new"
	}
}

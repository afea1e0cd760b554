// Package hotkeys binds global key sequences to placement presets.
package hotkeys

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
	"github.com/1broseidon/screenplace/internal/x11"
)

// Placer applies a named preset to a window. A zero window means the
// active one.
type Placer interface {
	ApplyPreset(name string, w monitor.WindowHandle) (platform.Placement, error)
}

// Binding maps one key sequence to a preset.
type Binding struct {
	Sequence string
	Preset   string
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	placer Placer
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler on an open X connection.
func NewHandler(conn *x11.Connection, placer Placer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	h := &Handler{
		placer: placer,
		logger: logger,
	}
	if conn != nil {
		h.xu = conn.XUtil
		h.root = conn.Root
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(h.xu)
		})
	}
	return h
}

// Bindings turns the hotkeys config section into a sorted list, dropping
// sequences bound to an empty preset.
func Bindings(hotkeys map[string]string) []Binding {
	out := make([]Binding, 0, len(hotkeys))
	for seq, preset := range hotkeys {
		seq, preset = strings.TrimSpace(seq), strings.TrimSpace(preset)
		if seq == "" || preset == "" {
			continue
		}
		out = append(out, Binding{Sequence: seq, Preset: preset})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// RegisterAll grabs every binding. It stops at the first sequence the X
// server refuses.
func (h *Handler) RegisterAll(bindings []Binding) error {
	for _, b := range bindings {
		if err := h.Register(b); err != nil {
			return err
		}
		h.logger.Info("hotkey registered", "sequence", b.Sequence, "preset", b.Preset)
	}
	return nil
}

// Register grabs one key sequence on the root window.
func (h *Handler) Register(b Binding) error {
	if h.xu == nil {
		return fmt.Errorf("register %q: no X connection", b.Sequence)
	}
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		h.Trigger(b)
	}).Connect(h.xu, h.root, b.Sequence, true)
	if err != nil {
		return fmt.Errorf("register %q: %w", b.Sequence, err)
	}
	return nil
}

// DetachAll releases every grab made by this handler.
func (h *Handler) DetachAll() {
	if h.xu == nil {
		return
	}
	keybind.Detach(h.xu, h.root)
}

// Trigger applies the binding's preset to the active window.
func (h *Handler) Trigger(b Binding) {
	h.logger.Debug("hotkey triggered", "sequence", b.Sequence, "preset", b.Preset)
	if _, err := h.placer.ApplyPreset(b.Preset, 0); err != nil {
		h.logger.Error("placement failed", "sequence", b.Sequence, "preset", b.Preset, "error", err)
	}
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = lockCombinations(base)
}

// lockCombinations returns every OR-combination of the lock masks,
// including the empty one.
func lockCombinations(base []uint16) []uint16 {
	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	out := make([]uint16, 0, len(unique))
	for mask := range unique {
		out = append(out, mask)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

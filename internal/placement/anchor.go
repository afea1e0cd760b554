package placement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAnchor implies a placement was requested with an unrecognised anchor.
var ErrInvalidAnchor = errors.New("invalid anchor")

// Anchor names a target position on a monitor.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorLeft        Anchor = "left"
	AnchorRight       Anchor = "right"
	AnchorTop         Anchor = "top"
	AnchorBottom      Anchor = "bottom"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorMaximize    Anchor = "maximize" // Fills the target bounds, ignoring the requested size.
)

// Anchors returns every supported anchor.
func Anchors() []Anchor {
	return []Anchor{
		AnchorCenter,
		AnchorLeft,
		AnchorRight,
		AnchorTop,
		AnchorBottom,
		AnchorTopLeft,
		AnchorTopRight,
		AnchorBottomLeft,
		AnchorBottomRight,
		AnchorMaximize,
	}
}

// Valid reports whether a is a supported anchor.
func (a Anchor) Valid() bool {
	for _, known := range Anchors() {
		if a == known {
			return true
		}
	}
	return false
}

// ParseAnchor resolves user input such as "TopRight", "top_right" or
// "top-right" to an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	if a := Anchor(s); a.Valid() {
		return a, nil
	}
	key := normalizeAnchorKey(s)
	for _, a := range Anchors() {
		if normalizeAnchorKey(string(a)) == key {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnchor, s)
}

func normalizeAnchorKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

package placement

import "strings"

const windowTypePrefix = "_NET_WM_WINDOW_TYPE_"

// Window types that belong to the desktop shell rather than an application.
var unplaceableTypes = map[string]bool{
	"desktop":      true,
	"dock":         true,
	"splash":       true,
	"notification": true,
}

// Placeable reports whether a window with the given EWMH window types may
// be moved. Types are accepted as atom names (_NET_WM_WINDOW_TYPE_DOCK) or
// short names (dock). The first recognised type decides; no type at all
// means a normal window.
func Placeable(types []string) bool {
	for _, t := range types {
		name := strings.ToLower(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(t)), windowTypePrefix))
		switch {
		case unplaceableTypes[name]:
			return false
		case name == "normal" || name == "dialog" || name == "utility":
			return true
		}
	}
	return true
}

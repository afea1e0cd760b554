package config

// BuiltinPresets returns the built-in preset library.
//
// These are always available without defining them in YAML. A user preset
// with the same name replaces the built-in one.
func BuiltinPresets() map[string]Preset {
	return map[string]Preset{
		"center": {
			Anchor:        "center",
			WidthPercent:  60,
			HeightPercent: 70,
		},
		"maximize": {
			Anchor: "maximize",
		},
		"left-half": {
			Anchor:        "left",
			WidthPercent:  50,
			HeightPercent: 100,
		},
		"right-half": {
			Anchor:        "right",
			WidthPercent:  50,
			HeightPercent: 100,
		},
		"top-half": {
			Anchor:        "top",
			WidthPercent:  100,
			HeightPercent: 50,
		},
		"bottom-half": {
			Anchor:        "bottom",
			WidthPercent:  100,
			HeightPercent: 50,
		},
		"top-left": {
			Anchor:        "top-left",
			WidthPercent:  50,
			HeightPercent: 50,
		},
		"top-right": {
			Anchor:        "top-right",
			WidthPercent:  50,
			HeightPercent: 50,
		},
		"bottom-left": {
			Anchor:        "bottom-left",
			WidthPercent:  50,
			HeightPercent: 50,
		},
		"bottom-right": {
			Anchor:        "bottom-right",
			WidthPercent:  50,
			HeightPercent: 50,
		},
	}
}

// DefaultHotkeys returns the default key bindings for the daemon.
func DefaultHotkeys() map[string]string {
	return map[string]string{
		"Mod4-Mod1-c":      "center",
		"Mod4-Mod1-Return": "maximize",
		"Mod4-Mod1-Left":   "left-half",
		"Mod4-Mod1-Right":  "right-half",
		"Mod4-Mod1-Up":     "top-half",
		"Mod4-Mod1-Down":   "bottom-half",
	}
}

// IsBuiltinPreset reports whether name is one of the built-in presets.
func IsBuiltinPreset(name string) bool {
	_, ok := BuiltinPresets()[name]
	return ok
}

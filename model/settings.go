package model

// Settings lists the options the web client recognizes. It is used for
// seeding a fresh settings document; the store itself keeps the document
// as a free-form map so unknown keys survive updates untouched.
type Settings struct {
	FontSize    int     `json:"fontSize"`    // px
	ScrollSpeed float64 `json:"scrollSpeed"` // auto-scroll multiplier
	DarkMode    bool    `json:"darkMode"`
	AutoScroll  bool    `json:"autoScroll"`
}

// DefaultSettings returns the settings a fresh document starts with.
func DefaultSettings() Settings {
	return Settings{
		FontSize:    16,
		ScrollSpeed: 1.0,
		DarkMode:    false,
		AutoScroll:  false,
	}
}

// SettingsDocument is the on-disk shape of the settings store. Updates are
// shallow merges into the inner map.
type SettingsDocument struct {
	Settings map[string]any `json:"settings"`
}

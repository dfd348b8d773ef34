package ledger

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme applies when no theme has been saved yet.
const DefaultTheme = ThemeDark

// ParseTheme validates s as a theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", &ValidationError{Field: "theme", Reason: "must be one of dark, light"}
}

// Settings is the global, single-record preferences object stored next to the ledger.
type Settings struct {
	Theme Theme `json:"theme"`
}

// Normalized returns s with an empty theme replaced by DefaultTheme.
func (s Settings) Normalized() Settings {
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
	return s
}

package prefs

// Language is the interface language preference.
type Language string

const (
	LangEN Language = "en"
	LangNL Language = "nl"
)

// DefaultLanguage applies when no stored value exists or the stored value is invalid.
const DefaultLanguage = LangNL

// ViewMode is the audience switch that gates copy and section visibility.
type ViewMode string

const (
	ModeFreelance    ViewMode = "freelance"
	ModeProfessional ViewMode = "professional"
)

const DefaultViewMode = ModeFreelance

// Theme is the presentation theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

const DefaultTheme = ThemeLight

// Cookie keys. Each key has exactly one writer role; see the welcome flow for
// the visited flag.
const (
	KeyLanguage = "preferred-language"
	KeyViewMode = "preferred-view-mode"
	KeyTheme    = "theme"
	KeyVisited  = "luca-portfolio-visited"
)

// ParseLanguage validates a stored value, failing closed to the default.
func ParseLanguage(v string) Language {
	switch Language(v) {
	case LangEN, LangNL:
		return Language(v)
	}
	return DefaultLanguage
}

// ValidLanguage reports whether v names a supported language.
func ValidLanguage(v string) bool {
	switch Language(v) {
	case LangEN, LangNL:
		return true
	}
	return false
}

// ParseViewMode validates a stored value, failing closed to the default.
func ParseViewMode(v string) ViewMode {
	switch ViewMode(v) {
	case ModeFreelance, ModeProfessional:
		return ViewMode(v)
	}
	return DefaultViewMode
}

func ValidViewMode(v string) bool {
	switch ViewMode(v) {
	case ModeFreelance, ModeProfessional:
		return true
	}
	return false
}

// ParseTheme validates a stored value, failing closed to the default.
func ParseTheme(v string) Theme {
	switch Theme(v) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return Theme(v)
	}
	return DefaultTheme
}

func ValidTheme(v string) bool {
	switch Theme(v) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// IsDark derives the effective dark flag from the theme preference and the
// client's reported color-scheme signal. It is never stored, only recomputed.
func IsDark(t Theme, systemDark bool) bool {
	switch t {
	case ThemeDark:
		return true
	case ThemeSystem:
		return systemDark
	default:
		return false
	}
}

package i18n

import (
	"fmt"

	"lucavisser.dev/portfolio/internal/prefs"
)

// Text is the atomic unit of bilingual copy. Both cases are populated at
// authoring time; Validate enforces that at load so a missing translation is
// a construction-time error, never a blank string at render time.
type Text struct {
	EN string `yaml:"en" json:"en"`
	NL string `yaml:"nl" json:"nl"`
}

// In projects the text for lang. Total over the language enum.
func (t Text) In(lang prefs.Language) string {
	if lang == prefs.LangEN {
		return t.EN
	}
	return t.NL
}

// Validate reports an error when either case is empty.
func (t Text) Validate(field string) error {
	if t.EN == "" || t.NL == "" {
		return fmt.Errorf("i18n: %s: both en and nl must be set (en=%q, nl=%q)", field, t.EN, t.NL)
	}
	return nil
}

// IsZero reports whether no case is populated, for optional fields.
func (t Text) IsZero() bool { return t.EN == "" && t.NL == "" }

package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"lucavisser.dev/portfolio/internal/prefs"
)

// Bundle holds the UI string catalogs keyed by language.
type Bundle struct {
	dict     map[prefs.Language]map[string]string
	fallback prefs.Language
}

// Load reads <lang>.json catalogs for both supported languages from dir.
// The fallback catalog must be present; the other may be missing in dev.
func Load(dir string, fallback prefs.Language) (*Bundle, error) {
	b := &Bundle{
		dict:     map[prefs.Language]map[string]string{},
		fallback: fallback,
	}
	for _, l := range []prefs.Language{prefs.LangEN, prefs.LangNL} {
		path := filepath.Join(dir, string(l)+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	return b, nil
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() prefs.Language { return b.fallback }

// T returns the translation for key in lang, falling back to the default
// catalog and finally the key itself.
func (b *Bundle) T(lang prefs.Language, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Resolve chooses the best supported language from an Accept-Language header,
// honouring q-values and base-tag matches. When no range names a supported
// language it returns fallback; callers decide what "no match" means.
func Resolve(acceptLang string, fallback prefs.Language) prefs.Language {
	type langPref struct {
		base string
		q    float64
		pos  int
	}
	prefsList := make([]langPref, 0, 8)
	for i, raw := range strings.Split(acceptLang, ",") {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		q := 1.0
		if sc := strings.IndexByte(p, ';'); sc != -1 {
			params := strings.TrimSpace(p[sc+1:])
			p = strings.TrimSpace(p[:sc])
			if strings.HasPrefix(params, "q=") {
				if v, err := parseQValue(strings.TrimPrefix(params, "q=")); err == nil {
					q = v
				}
			}
		}
		base := p
		if dash := strings.IndexByte(p, '-'); dash != -1 {
			base = p[:dash]
		}
		prefsList = append(prefsList, langPref{base: strings.ToLower(base), q: q, pos: i})
	}
	sort.SliceStable(prefsList, func(i, j int) bool {
		if prefsList[i].q == prefsList[j].q {
			return prefsList[i].pos < prefsList[j].pos
		}
		return prefsList[i].q > prefsList[j].q
	})
	for _, lp := range prefsList {
		if prefs.ValidLanguage(lp.base) {
			return prefs.Language(lp.base)
		}
	}
	return fallback
}

// parseQValue parses a qvalue per RFC 7231 (0.0 to 1.0).
func parseQValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1", "1.0", "1.00":
		return 1.0, nil
	case "0", "0.0", "0.00":
		return 0.0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v, nil
}

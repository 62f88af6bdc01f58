package prefs

import (
	"context"
	"net/http"
	"strings"
)

// Prefs bundles the per-request preference stores plus the visited flag.
// Handlers must read through the copy in the request context rather than
// caching values across an update.
type Prefs struct {
	language   *Store
	viewMode   *Store
	theme      *Store
	backend    Backend
	systemDark bool
	visited    bool
}

// Resolve rehydrates all stores from backend. systemDark carries the
// client-reported color-scheme signal used when the theme is "system".
func Resolve(backend Backend, systemDark bool) *Prefs {
	p := &Prefs{
		language:   NewStore(backend, KeyLanguage, string(DefaultLanguage), ValidLanguage),
		viewMode:   NewStore(backend, KeyViewMode, string(DefaultViewMode), ValidViewMode),
		theme:      NewStore(backend, KeyTheme, string(DefaultTheme), ValidTheme),
		backend:    backend,
		systemDark: systemDark,
	}
	if backend != nil {
		if v, err := backend.Get(KeyVisited); err == nil && v == "true" {
			p.visited = true
		}
	}
	return p
}

// The typed accessors parse the stored string, so even a hand-built Prefs
// never hands out a value outside the enum.
func (p *Prefs) Language() Language { return ParseLanguage(p.language.Current()) }
func (p *Prefs) ViewMode() ViewMode { return ParseViewMode(p.viewMode.Current()) }
func (p *Prefs) Theme() Theme       { return ParseTheme(p.theme.Current()) }

// IsDark is recomputed from the theme and the client signal on every call.
func (p *Prefs) IsDark() bool { return IsDark(p.Theme(), p.systemDark) }

func (p *Prefs) SetLanguage(l Language) { p.language.Set(string(l)) }
func (p *Prefs) SetViewMode(m ViewMode) { p.viewMode.Set(string(m)) }
func (p *Prefs) SetTheme(t Theme)       { p.theme.Set(string(t)) }

// Visited reports whether the welcome flow has already run in this browser.
func (p *Prefs) Visited() bool { return p.visited }

// MarkVisited persists the write-once visited flag.
func (p *Prefs) MarkVisited() {
	p.visited = true
	if p.backend != nil {
		_ = p.backend.Set(KeyVisited, "true")
	}
}

type ctxKey struct{}

// FromContext returns the request's preferences, defaulting to an in-memory
// set so callers outside the middleware still observe valid values.
func FromContext(ctx context.Context) *Prefs {
	if p, ok := ctx.Value(ctxKey{}).(*Prefs); ok {
		return p
	}
	return Resolve(NewMemoryBackend(), false)
}

// FromRequest is shorthand for FromContext(r.Context()).
func FromRequest(r *http.Request) *Prefs { return FromContext(r.Context()) }

// Middleware rehydrates preferences from cookies, honours the `hl` query
// override for language, and surfaces Content-Language on the response.
func Middleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			backend := NewCookieBackend(w, r, secure)
			systemDark := strings.EqualFold(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), "dark")
			p := Resolve(backend, systemDark)

			if q := strings.ToLower(r.URL.Query().Get("hl")); q != "" && ValidLanguage(q) {
				p.SetLanguage(Language(q))
			}

			// ask the client to keep sending its color-scheme signal
			w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
			w.Header().Set("Content-Language", string(p.Language()))

			ctx := context.WithValue(r.Context(), ctxKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

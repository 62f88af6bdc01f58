package main

import (
	"net/http"
	"net/url"
	"strings"

	mw "lucavisser.dev/portfolio/internal/middleware"
	"lucavisser.dev/portfolio/internal/prefs"
)

// SetLanguageHandler commits a language choice from the toggle control.
func SetLanguageHandler(w http.ResponseWriter, r *http.Request) {
	v := r.PostFormValue("language")
	if !prefs.ValidLanguage(v) {
		http.Error(w, "invalid language", http.StatusBadRequest)
		return
	}
	prefs.FromRequest(r).SetLanguage(prefs.Language(v))
	prefChanged(w, r, "languageChanged", v)
}

// SetViewModeHandler commits an audience choice from the mode switch.
func SetViewModeHandler(w http.ResponseWriter, r *http.Request) {
	v := r.PostFormValue("mode")
	if !prefs.ValidViewMode(v) {
		http.Error(w, "invalid view mode", http.StatusBadRequest)
		return
	}
	prefs.FromRequest(r).SetViewMode(prefs.ViewMode(v))
	prefChanged(w, r, "viewModeChanged", v)
}

// SetThemeHandler commits a theme choice from the theme control.
func SetThemeHandler(w http.ResponseWriter, r *http.Request) {
	v := r.PostFormValue("theme")
	if !prefs.ValidTheme(v) {
		http.Error(w, "invalid theme", http.StatusBadRequest)
		return
	}
	prefs.FromRequest(r).SetTheme(prefs.Theme(v))
	prefChanged(w, r, "themeChanged", v)
}

// prefChanged answers a preference commit: htmx callers get an event trigger
// so the page can re-render affected regions, plain form posts get sent back
// to the page they came from.
func prefChanged(w http.ResponseWriter, r *http.Request, event, value string) {
	if mw.IsHTMX(r.Context()) {
		mw.HXTrigger(w, event, map[string]string{"value": value})
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

// returnPath reduces the Referer header to a same-origin path so a forged
// Referer cannot bounce the visitor off-site after a preference post.
func returnPath(r *http.Request) string {
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	target := ref.Path
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	return target
}

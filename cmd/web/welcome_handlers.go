package main

import (
	"net/http"

	mw "lucavisser.dev/portfolio/internal/middleware"
	"lucavisser.dev/portfolio/internal/prefs"
	"lucavisser.dev/portfolio/internal/welcome"
)

// The wizard's local, not-yet-committed selections travel in the step forms,
// so each request reconstructs the flow and drives one transition.

// WelcomeStepHandler advances from the language step to the mode step.
func WelcomeStepHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	flow := welcome.New(p, nil)
	flow.Start(r.Header.Get("Accept-Language"))
	if flow.State() == welcome.StateClosed {
		welcomeClosed(w, r)
		return
	}

	lang := r.PostFormValue("language")
	if !prefs.ValidLanguage(lang) {
		http.Error(w, "invalid language", http.StatusBadRequest)
		return
	}
	flow.ChooseLanguage(prefs.Language(lang))
	renderWelcome(w, r, flow)
}

// WelcomeBackHandler returns to the language step, selections intact.
func WelcomeBackHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	flow := welcome.New(p, nil)
	flow.Start(r.Header.Get("Accept-Language"))
	if flow.State() == welcome.StateClosed {
		welcomeClosed(w, r)
		return
	}
	if lang := r.PostFormValue("language"); prefs.ValidLanguage(lang) {
		flow.ChooseLanguage(prefs.Language(lang))
		flow.Back()
	}
	renderWelcome(w, r, flow)
}

// WelcomeCompleteHandler commits both selections and closes the wizard.
func WelcomeCompleteHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	flow := welcome.New(p, func() { welcomeClosed(w, r) })
	flow.Start(r.Header.Get("Accept-Language"))
	if flow.State() == welcome.StateClosed {
		welcomeClosed(w, r)
		return
	}

	lang := r.PostFormValue("language")
	mode := r.PostFormValue("mode")
	if !prefs.ValidLanguage(lang) || !prefs.ValidViewMode(mode) {
		http.Error(w, "invalid selection", http.StatusBadRequest)
		return
	}
	flow.ChooseLanguage(prefs.Language(lang))
	flow.Complete(prefs.ViewMode(mode))
}

// WelcomeSkipHandler closes the wizard without touching language or mode.
func WelcomeSkipHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	flow := welcome.New(p, func() { welcomeClosed(w, r) })
	flow.Start(r.Header.Get("Accept-Language"))
	if flow.State() == welcome.StateClosed {
		welcomeClosed(w, r)
		return
	}
	flow.Skip()
}

func renderWelcome(w http.ResponseWriter, r *http.Request, flow *welcome.Flow) {
	lang, mode := flow.Selection()
	vm := basePage(r, "Welcome")
	vm.Welcome = &WelcomeView{State: flow.State(), Language: lang, Mode: mode}
	render(w, r, "welcome_wizard", vm)
}

// welcomeClosed is the flow's completion response: htmx callers reload the
// page body through an event, plain posts are redirected home.
func welcomeClosed(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.HXTrigger(w, "welcomeDone", map[string]string{})
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Package welcome implements the one-time onboarding wizard that collects the
// visitor's language and audience before the site renders for the first time.
package welcome

import (
	"strings"

	"lucavisser.dev/portfolio/internal/i18n"
	"lucavisser.dev/portfolio/internal/prefs"
)

// State names the wizard's position.
type State string

const (
	StateClosed   State = "closed"
	StateLanguage State = "language-step"
	StateMode     State = "mode-step"
)

// Flow is the onboarding state machine. Selections are held locally and only
// committed to the preference stores on Complete, so no consumer can observe
// a half-applied welcome selection. The completion callback fires exactly
// once per flow, on whichever exit path closes it.
type Flow struct {
	prefs      *prefs.Prefs
	state      State
	language   prefs.Language
	mode       prefs.ViewMode
	onComplete func()
	fired      bool
}

// New builds a closed flow over p. onComplete may be nil.
func New(p *prefs.Prefs, onComplete func()) *Flow {
	return &Flow{
		prefs:      p,
		state:      StateClosed,
		language:   prefs.DefaultLanguage,
		mode:       prefs.DefaultViewMode,
		onComplete: onComplete,
	}
}

// Start opens the wizard at the language step unless the visitor has been
// here before. acceptLang preselects the language choice from the browser
// locale via GuessLanguage; it never bypasses the step itself.
func (f *Flow) Start(acceptLang string) {
	if f.prefs.Visited() {
		f.state = StateClosed
		return
	}
	f.state = StateLanguage
	f.language = GuessLanguage(acceptLang)
}

// State returns the current wizard position.
func (f *Flow) State() State { return f.state }

// Selection returns the locally held, not-yet-committed choices.
func (f *Flow) Selection() (prefs.Language, prefs.ViewMode) { return f.language, f.mode }

// ChooseLanguage records the step-one choice and advances to the mode step.
func (f *Flow) ChooseLanguage(l prefs.Language) {
	if f.state != StateLanguage {
		return
	}
	f.language = l
	f.state = StateMode
}

// Back returns to the language step with prior selections intact.
func (f *Flow) Back() {
	if f.state == StateMode {
		f.state = StateLanguage
	}
}

// Complete commits both held selections through the preference stores, marks
// the visit, and closes the flow. Both stores are updated before the closed
// state is observable.
func (f *Flow) Complete(mode prefs.ViewMode) {
	if f.state != StateMode {
		return
	}
	f.mode = mode
	f.prefs.SetLanguage(f.language)
	f.prefs.SetViewMode(f.mode)
	f.prefs.MarkVisited()
	f.close()
}

// Skip closes the flow from any state, marking the visit without touching the
// language or view-mode stores.
func (f *Flow) Skip() {
	if f.state == StateClosed {
		return
	}
	f.prefs.MarkVisited()
	f.close()
}

func (f *Flow) close() {
	f.state = StateClosed
	if f.onComplete != nil && !f.fired {
		f.fired = true
		f.onComplete()
	}
}

// GuessLanguage maps a browser locale string to a supported language. Full
// Accept-Language headers go through the q-value resolver; a bare locale tag
// selects Dutch only on an "nl" prefix. Either way a non-Dutch visitor
// preselects English rather than being defaulted into Dutch copy mid-wizard.
func GuessLanguage(locale string) prefs.Language {
	locale = strings.TrimSpace(locale)
	if strings.ContainsAny(locale, ",;") {
		return i18n.Resolve(locale, prefs.LangEN)
	}
	l := strings.ToLower(locale)
	if l == "nl" || strings.HasPrefix(l, "nl-") {
		return prefs.LangNL
	}
	return prefs.LangEN
}

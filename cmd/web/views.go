package main

import (
	"net/http"

	"lucavisser.dev/portfolio/internal/content"
	mw "lucavisser.dev/portfolio/internal/middleware"
	"lucavisser.dev/portfolio/internal/nav"
	"lucavisser.dev/portfolio/internal/prefs"
	"lucavisser.dev/portfolio/internal/welcome"
)

// PageData is the shared view model for pages using the base layout.
type PageData struct {
	Title     string
	Lang      prefs.Language
	ViewMode  prefs.ViewMode
	Theme     prefs.Theme
	IsDark    bool
	Path      string
	Nav       []nav.RenderedItem
	CSRFToken string

	// Welcome is non-nil while the onboarding wizard should overlay the page.
	Welcome *WelcomeView

	// Optional per-page view model payloads
	Home       *HomeView
	Projects   *ProjectsView
	Services   *ServicesView
	Experience *ExperienceView
	About      *AboutView
}

// WelcomeView carries the wizard's position and locally held selections.
type WelcomeView struct {
	State    welcome.State
	Language prefs.Language
	Mode     prefs.ViewMode
}

// HomeView is the landing page payload.
type HomeView struct {
	Featured        []content.Project
	Services        []content.Service
	Experience      []content.Experience
	ShowServices    bool
	ShowExperience  bool
}

// ProjectsView is the all-projects listing payload.
type ProjectsView struct {
	Projects   []content.Project
	Categories []string
	Active     string
	Empty      bool
}

// ServicesView lists the freelance offerings.
type ServicesView struct {
	Services []content.Service
}

// ExperienceView lists the recruiter-facing résumé entries.
type ExperienceView struct {
	Entries []content.Experience
}

// AboutView wraps the localized bio page, degrading to a placeholder when the
// authored content is missing.
type AboutView struct {
	Page        content.Page
	Placeholder bool
}

// basePage assembles the layout fields every page shares from the request's
// resolved preferences.
func basePage(r *http.Request, title string) PageData {
	p := prefs.FromRequest(r)
	return PageData{
		Title:     title,
		Lang:      p.Language(),
		ViewMode:  p.ViewMode(),
		Theme:     p.Theme(),
		IsDark:    p.IsDark(),
		Path:      r.URL.Path,
		Nav:       nav.Build(r.URL.Path, p.ViewMode()),
		CSRFToken: mw.CSRFToken(r),
	}
}

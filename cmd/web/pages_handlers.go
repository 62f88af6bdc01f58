package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"lucavisser.dev/portfolio/internal/content"
	mw "lucavisser.dev/portfolio/internal/middleware"
	"lucavisser.dev/portfolio/internal/prefs"
	"lucavisser.dev/portfolio/internal/welcome"
)

// HomeHandler renders the landing page. First-time visitors get the welcome
// wizard overlay at its language step.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	vm := basePage(r, "Luca Visser")

	flow := welcome.New(p, nil)
	flow.Start(r.Header.Get("Accept-Language"))
	if flow.State() != welcome.StateClosed {
		lang, mode := flow.Selection()
		vm.Welcome = &WelcomeView{State: flow.State(), Language: lang, Mode: mode}
	}

	mode := p.ViewMode()
	vm.Home = &HomeView{
		Featured:       catalog.FeaturedProjects(mode),
		Services:       catalog.VisibleServices(mode),
		Experience:     catalog.VisibleExperience(mode),
		ShowServices:   content.SectionServices.VisibleIn(mode),
		ShowExperience: content.SectionExperience.VisibleIn(mode),
	}
	render(w, r, "base", vm)
}

// ProjectsHandler renders the all-projects listing with the category filter.
// An empty result renders an explicit empty state, never a blank region.
func ProjectsHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	category := r.URL.Query().Get("category")

	visible := catalog.VisibleProjects(p.ViewMode())
	filtered := content.FilterByCategory(visible, category)

	vm := basePage(r, "Projects")
	vm.Projects = &ProjectsView{
		Projects:   filtered,
		Categories: catalog.Categories(p.ViewMode()),
		Active:     category,
		Empty:      len(filtered) == 0,
	}
	if mw.IsHTMX(r.Context()) {
		render(w, r, "projects_list", vm)
		return
	}
	render(w, r, "base", vm)
}

// ServicesHandler renders the freelance offerings; under any other view mode
// the section does not exist, so the visitor is sent home.
func ServicesHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	if !content.SectionServices.VisibleIn(p.ViewMode()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	vm := basePage(r, "Services")
	vm.Services = &ServicesView{Services: catalog.VisibleServices(p.ViewMode())}
	render(w, r, "base", vm)
}

// ExperienceHandler renders the recruiter-facing résumé; gated to the
// professional view mode.
func ExperienceHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	if !content.SectionExperience.VisibleIn(p.ViewMode()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	vm := basePage(r, "Experience")
	vm.Experience = &ExperienceView{Entries: catalog.VisibleExperience(p.ViewMode())}
	render(w, r, "base", vm)
}

// AboutHandler renders the localized bio. Missing authored content degrades
// to a placeholder rather than failing the page.
func AboutHandler(w http.ResponseWriter, r *http.Request) {
	p := prefs.FromRequest(r)
	vm := basePage(r, "About")

	page, err := sitePages.Get("about", p.Language())
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			mw.Logger(r.Context()).Warn("about page load", zap.Error(err))
		}
		vm.About = &AboutView{Placeholder: true}
	} else {
		vm.About = &AboutView{Page: page}
	}
	render(w, r, "base", vm)
}

// ContactPageHandler renders the contact form page.
func ContactPageHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePage(r, "Contact")
	render(w, r, "base", vm)
}

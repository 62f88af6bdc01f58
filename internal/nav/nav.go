// Package nav declares the primary navigation and renders it for the active
// view mode, so which links appear in which mode is decided in one place.
package nav

import (
	"strings"

	"lucavisser.dev/portfolio/internal/content"
	"lucavisser.dev/portfolio/internal/prefs"
)

// Item represents a top-level navigation item. Section ties visibility to the
// central mode-gating table.
type Item struct {
	Path     string
	LabelKey string // i18n key, e.g. "nav.projects"
	Section  content.Section
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/projects", LabelKey: "nav.projects", Section: content.SectionProjects},
	{Path: "/services", LabelKey: "nav.services", Section: content.SectionServices},
	{Path: "/experience", LabelKey: "nav.experience", Section: content.SectionExperience},
	{Path: "/about", LabelKey: "nav.about", Section: content.SectionAbout},
	{Path: "/contact", LabelKey: "nav.contact", Section: content.SectionContact},
}

// Build renders the navigation items visible under mode, marking the active
// entry for the current path.
func Build(currentPath string, mode prefs.ViewMode) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		if !it.Section.VisibleIn(mode) {
			continue
		}
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

package content

import "lucavisser.dev/portfolio/internal/prefs"

// Section names a page region whose visibility depends on the view mode.
type Section string

const (
	SectionHero       Section = "hero"
	SectionServices   Section = "services"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
	SectionAbout      Section = "about"
	SectionContact    Section = "contact"
)

// sectionModes is the single declaration of what renders in which mode.
var sectionModes = map[Section]struct{ freelance, professional bool }{
	SectionHero:       {true, true},
	SectionServices:   {true, false},
	SectionExperience: {false, true},
	SectionProjects:   {true, true},
	SectionAbout:      {true, true},
	SectionContact:    {true, true},
}

// VisibleIn reports whether the section renders under mode. Unknown sections
// render nowhere.
func (s Section) VisibleIn(mode prefs.ViewMode) bool {
	v, ok := sectionModes[s]
	if !ok {
		return false
	}
	if mode == prefs.ModeProfessional {
		return v.professional
	}
	return v.freelance
}

// Package content holds the build-time-authored fixtures (projects, services,
// experience) and the pure selectors that pick the subset appropriate to the
// active language and view mode.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"lucavisser.dev/portfolio/internal/i18n"
	"lucavisser.dev/portfolio/internal/prefs"
)

// Project is a portfolio entry. Visibility flags gate which audience sees it.
type Project struct {
	Slug               string    `yaml:"slug"`
	Title              i18n.Text `yaml:"title"`
	Summary            i18n.Text `yaml:"summary"`
	Category           string    `yaml:"category"`
	Tech               []string  `yaml:"tech"`
	URL                string    `yaml:"url"`
	Repo               string    `yaml:"repo"`
	Image              string    `yaml:"image"`
	Featured           bool      `yaml:"featured"`
	ShowInFreelance    bool      `yaml:"show_in_freelance"`
	ShowInProfessional bool      `yaml:"show_in_professional"`
}

// Service is a freelance offering.
type Service struct {
	Slug        string      `yaml:"slug"`
	Icon        string      `yaml:"icon"`
	Title       i18n.Text   `yaml:"title"`
	Description i18n.Text   `yaml:"description"`
	Points      []i18n.Text `yaml:"points"`
}

// Experience is a résumé entry shown to recruiters.
type Experience struct {
	Role       i18n.Text   `yaml:"role"`
	Company    string      `yaml:"company"`
	Location   string      `yaml:"location"`
	Start      string      `yaml:"start"`
	End        string      `yaml:"end"`
	Summary    i18n.Text   `yaml:"summary"`
	Highlights []i18n.Text `yaml:"highlights"`
}

// Catalog is the loaded, validated fixture set. Read-only after Load.
type Catalog struct {
	Projects   []Project
	Services   []Service
	Experience []Experience
}

// Load reads the fixture YAML files under dir and validates every localized
// field. A partial translation is a load error, not a runtime fallback.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{}
	if err := readYAML(filepath.Join(dir, "projects.yaml"), &c.Projects); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, "services.yaml"), &c.Services); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, "experience.yaml"), &c.Experience); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func readYAML(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("content: parse %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	for _, p := range c.Projects {
		if p.Slug == "" {
			return fmt.Errorf("content: project without slug")
		}
		if err := p.Title.Validate("project " + p.Slug + " title"); err != nil {
			return err
		}
		if err := p.Summary.Validate("project " + p.Slug + " summary"); err != nil {
			return err
		}
		if !p.ShowInFreelance && !p.ShowInProfessional {
			return fmt.Errorf("content: project %s visible in no view mode", p.Slug)
		}
	}
	for _, s := range c.Services {
		if err := s.Title.Validate("service " + s.Slug + " title"); err != nil {
			return err
		}
		if err := s.Description.Validate("service " + s.Slug + " description"); err != nil {
			return err
		}
		for i, pt := range s.Points {
			if err := pt.Validate(fmt.Sprintf("service %s point %d", s.Slug, i)); err != nil {
				return err
			}
		}
	}
	for _, e := range c.Experience {
		if err := e.Role.Validate("experience at " + e.Company + " role"); err != nil {
			return err
		}
		if err := e.Summary.Validate("experience at " + e.Company + " summary"); err != nil {
			return err
		}
		for i, h := range e.Highlights {
			if err := h.Validate(fmt.Sprintf("experience at %s highlight %d", e.Company, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// VisibleProjects filters the project list to the given view mode.
func (c *Catalog) VisibleProjects(mode prefs.ViewMode) []Project {
	out := make([]Project, 0, len(c.Projects))
	for _, p := range c.Projects {
		if p.visibleIn(mode) {
			out = append(out, p)
		}
	}
	return out
}

func (p Project) visibleIn(mode prefs.ViewMode) bool {
	if mode == prefs.ModeProfessional {
		return p.ShowInProfessional
	}
	return p.ShowInFreelance
}

// VisibleServices returns the service offerings, or nothing when the section
// does not render under mode.
func (c *Catalog) VisibleServices(mode prefs.ViewMode) []Service {
	if !SectionServices.VisibleIn(mode) {
		return nil
	}
	return c.Services
}

// VisibleExperience returns the résumé entries, or nothing when the section
// does not render under mode.
func (c *Catalog) VisibleExperience(mode prefs.ViewMode) []Experience {
	if !SectionExperience.VisibleIn(mode) {
		return nil
	}
	return c.Experience
}

// FilterByCategory narrows projects to a user-chosen category. An empty
// category means no further filtering.
func FilterByCategory(projects []Project, category string) []Project {
	if category == "" {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the sorted distinct categories among projects visible in
// mode, for the listing page's filter control.
func (c *Catalog) Categories(mode prefs.ViewMode) []string {
	seen := map[string]struct{}{}
	for _, p := range c.VisibleProjects(mode) {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// FeaturedProjects returns the mode-visible projects flagged for the home page.
func (c *Catalog) FeaturedProjects(mode prefs.ViewMode) []Project {
	out := make([]Project, 0, 4)
	for _, p := range c.VisibleProjects(mode) {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"lucavisser.dev/portfolio/internal/prefs"
)

// ErrNotFound is returned when no localized page file exists for a slug.
var ErrNotFound = errors.New("content: page not found")

// Page is a localized static page (the about-page bio) sourced from markdown
// with YAML front matter.
type Page struct {
	Slug      string
	Lang      prefs.Language
	Title     string
	Summary   string
	HTML      template.HTML
	UpdatedAt time.Time
}

type pageFrontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Pages loads localized markdown pages from <dir>/<slug>.<lang>.md with an
// in-memory TTL cache.
type Pages struct {
	dir string

	mu    sync.RWMutex
	cache map[string]pageEntry
	ttl   time.Duration
}

type pageEntry struct {
	page    Page
	expires time.Time
}

var pageHTMLPolicy = newPageHTMLPolicy()

func newPageHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// NewPages constructs a loader rooted at dir.
func NewPages(dir string) *Pages {
	return &Pages{dir: dir, cache: map[string]pageEntry{}, ttl: 5 * time.Minute}
}

// SetCacheDuration overrides the cache TTL, primarily for tests.
func (p *Pages) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	p.mu.Lock()
	p.ttl = d
	p.cache = map[string]pageEntry{}
	p.mu.Unlock()
}

// Get returns the page for slug in lang, falling back to the other language
// when the requested localization is missing. Changing the view mode never
// changes the result.
func (p *Pages) Get(slug string, lang prefs.Language) (Page, error) {
	key := slug + "|" + string(lang)
	if page, ok := p.cached(key); ok {
		return page, nil
	}

	priority := []prefs.Language{lang}
	if lang != prefs.LangEN {
		priority = append(priority, prefs.LangEN)
	}
	if lang != prefs.LangNL {
		priority = append(priority, prefs.LangNL)
	}
	for _, candidate := range priority {
		page, err := p.read(slug, candidate)
		if err == nil {
			p.store(key, page)
			return page, nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrNotFound) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrNotFound
}

func (p *Pages) read(slug string, lang prefs.Language) (Page, error) {
	if strings.Contains(slug, "..") || strings.ContainsRune(slug, os.PathSeparator) {
		return Page{}, ErrNotFound
	}
	file := filepath.Join(p.dir, fmt.Sprintf("%s.%s.md", slug, lang))
	data, err := os.ReadFile(file)
	if err != nil {
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := pageFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	sanitized := pageHTMLPolicy.Sanitize(buf.String())

	page := Page{
		Slug:      slug,
		Lang:      lang,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		HTML:      template.HTML(sanitized),
		UpdatedAt: parsePageDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, statErr := os.Stat(file); statErr == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parsePageDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (p *Pages) cached(key string) (Page, bool) {
	now := time.Now()
	p.mu.RLock()
	entry, ok := p.cache[key]
	p.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (p *Pages) store(key string, page Page) {
	p.mu.Lock()
	p.cache[key] = pageEntry{page: page, expires: time.Now().Add(p.ttl)}
	p.mu.Unlock()
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"lucavisser.dev/portfolio/internal/contact"
	"lucavisser.dev/portfolio/internal/content"
	"lucavisser.dev/portfolio/internal/i18n"
	"lucavisser.dev/portfolio/internal/mail"
	"lucavisser.dev/portfolio/internal/prefs"
)

// newTestRouter builds a router like main() against the repo's real
// templates, locales, and fixtures.
func newTestRouter(t *testing.T, mailer mail.Mailer) http.Handler {
	t.Helper()
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	var err error
	i18nBundle, err = i18n.Load("../../locales", prefs.DefaultLanguage)
	if err != nil {
		t.Fatalf("load i18n: %v", err)
	}
	catalog, err = content.Load("../../content/data")
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	sitePages = content.NewPages("../../content/pages")

	if mailer == nil {
		mailer = &mail.Fake{ID: "msg_test"}
	}
	ch := contact.NewHandler(mailer, zap.NewNop(), "Portfolio <hello@example.com>", "inbox@example.com")
	return newRouter(zap.NewNop(), ch, false)
}

func get(t *testing.T, srv http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func postForm(t *testing.T, srv http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	form.Set("csrf_token", "tok")
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeShowsWelcomeOnFirstVisit(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)
	if doc.Find("#welcome").Length() != 1 {
		t.Fatalf("expected welcome overlay for a first visit")
	}
	if doc.Find(`#welcome button[name="language"]`).Length() != 2 {
		t.Fatalf("expected the language step with both choices")
	}
}

func TestHomeHidesWelcomeForReturningVisitor(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/", &http.Cookie{Name: prefs.KeyVisited, Value: "true"})
	doc := parseDoc(t, rec)
	if doc.Find("#welcome").Length() != 0 {
		t.Fatalf("returning visitor must not see the wizard")
	}
}

func TestHomeDefaultsToDutchFreelance(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := parseDoc(t, get(t, srv, "/"))

	if lang, _ := doc.Find("html").Attr("lang"); lang != "nl" {
		t.Fatalf("html lang = %q", lang)
	}
	if doc.Find(".services-preview").Length() != 1 {
		t.Fatalf("freelance home must show the services preview")
	}
	if doc.Find(".experience-preview").Length() != 0 {
		t.Fatalf("freelance home must not show experience")
	}
}

func TestHomeInProfessionalMode(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := parseDoc(t, get(t, srv, "/", &http.Cookie{Name: prefs.KeyViewMode, Value: "professional"}))

	if doc.Find(".experience-preview").Length() != 1 {
		t.Fatalf("professional home must show experience")
	}
	if doc.Find(".services-preview").Length() != 0 {
		t.Fatalf("professional home must not show services")
	}
}

func TestNavGatedByViewMode(t *testing.T) {
	srv := newTestRouter(t, nil)

	doc := parseDoc(t, get(t, srv, "/"))
	if doc.Find(`nav a[href="/services"]`).Length() != 1 {
		t.Fatalf("freelance nav must link services")
	}
	if doc.Find(`nav a[href="/experience"]`).Length() != 0 {
		t.Fatalf("freelance nav must not link experience")
	}

	doc = parseDoc(t, get(t, srv, "/", &http.Cookie{Name: prefs.KeyViewMode, Value: "professional"}))
	if doc.Find(`nav a[href="/experience"]`).Length() != 1 {
		t.Fatalf("professional nav must link experience")
	}
	if doc.Find(`nav a[href="/services"]`).Length() != 0 {
		t.Fatalf("professional nav must not link services")
	}
}

func TestGatedPagesRedirectHome(t *testing.T) {
	srv := newTestRouter(t, nil)

	rec := get(t, srv, "/services", &http.Cookie{Name: prefs.KeyViewMode, Value: "professional"})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("services in professional mode: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = get(t, srv, "/experience")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("experience in freelance mode: %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestProjectsCategoryFilterEmptyState(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := parseDoc(t, get(t, srv, "/projects?category=hardware"))
	if doc.Find(".empty-state").Length() != 1 {
		t.Fatalf("expected an explicit empty state, got body: %s", doc.Text())
	}
}

func TestProjectsHTMXFragment(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("htmx request must get a fragment, not a full page")
	}
	if !strings.Contains(body, "card") {
		t.Fatalf("fragment missing project cards: %s", body)
	}
}

func TestLanguageOverrideQuery(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/?hl=en")

	doc := parseDoc(t, rec)
	if lang, _ := doc.Find("html").Attr("lang"); lang != "en" {
		t.Fatalf("html lang = %q", lang)
	}
	if got := rec.Header().Get("Content-Language"); got != "en" {
		t.Fatalf("Content-Language = %q", got)
	}
	c := responseCookie(rec, prefs.KeyLanguage)
	if c == nil || c.Value != "en" {
		t.Fatalf("override must persist, cookie = %+v", c)
	}
}

func TestSetLanguageEndpoint(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := postForm(t, srv, "/prefs/language", url.Values{"language": {"en"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	c := responseCookie(rec, prefs.KeyLanguage)
	if c == nil || c.Value != "en" {
		t.Fatalf("language cookie = %+v", c)
	}
}

func TestPrefsRedirectStaysOnSite(t *testing.T) {
	srv := newTestRouter(t, nil)

	post := func(referer string) *httptest.ResponseRecorder {
		form := url.Values{"language": {"en"}, "csrf_token": {"tok"}}
		req := httptest.NewRequest(http.MethodPost, "/prefs/language", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Referer", referer)
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	rec := post("http://example.com/projects?category=web")
	if got := rec.Header().Get("Location"); got != "/projects?category=web" {
		t.Fatalf("same-origin referer must be honoured, got %q", got)
	}

	for _, referer := range []string{
		"https://evil.example/phish",
		"//evil.example/phish",
		"",
	} {
		rec = post(referer)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("Referer %q: expected redirect, got %d", referer, rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "/" {
			t.Fatalf("Referer %q must fall back to '/', got %q", referer, got)
		}
	}
}

func TestSetThemeHTMX(t *testing.T) {
	srv := newTestRouter(t, nil)
	form := url.Values{"theme": {"dark"}, "csrf_token": {"tok"}}
	req := httptest.NewRequest(http.MethodPost, "/prefs/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "themeChanged") {
		t.Fatalf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}
	if c := responseCookie(rec, prefs.KeyTheme); c == nil || c.Value != "dark" {
		t.Fatalf("theme cookie = %+v", c)
	}
}

func TestSetViewModeRejectsUnknownValue(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := postForm(t, srv, "/prefs/view-mode", url.Values{"mode": {"consultant"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPrefsEndpointsRequireCSRF(t *testing.T) {
	srv := newTestRouter(t, nil)
	form := url.Values{"theme": {"dark"}}
	req := httptest.NewRequest(http.MethodPost, "/prefs/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a token, got %d", rec.Code)
	}
}

func TestWelcomeStepAdvancesToModeStep(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := postForm(t, srv, "/welcome/step", url.Values{"language": {"en"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)
	if doc.Find(`input[name="mode"]`).Length() != 2 {
		t.Fatalf("expected the mode step with both choices")
	}
	if v, _ := doc.Find(`input[name="language"]`).Attr("value"); v != "en" {
		t.Fatalf("step one selection must ride along, got %q", v)
	}
}

func TestWelcomeBackKeepsSelection(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := postForm(t, srv, "/welcome/back", url.Values{"language": {"en"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if doc.Find(`button[name="language"][value="en"].preselected`).Length() != 1 {
		t.Fatalf("prior language choice must stay preselected")
	}
}

func TestWelcomeCompletePersistsEverything(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := postForm(t, srv, "/welcome/complete", url.Values{
		"language": {"en"},
		"mode":     {"professional"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	for name, want := range map[string]string{
		prefs.KeyLanguage: "en",
		prefs.KeyViewMode: "professional",
		prefs.KeyVisited:  "true",
	} {
		c := responseCookie(rec, name)
		if c == nil || c.Value != want {
			t.Fatalf("cookie %s = %+v, want %q", name, c, want)
		}
	}
}

func TestWelcomeSkipOnlyMarksVisit(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := postForm(t, srv, "/welcome/skip", url.Values{})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if c := responseCookie(rec, prefs.KeyVisited); c == nil || c.Value != "true" {
		t.Fatalf("visited cookie = %+v", c)
	}
	if c := responseCookie(rec, prefs.KeyLanguage); c != nil {
		t.Fatalf("skip must not write a language cookie, got %+v", c)
	}
	if c := responseCookie(rec, prefs.KeyViewMode); c != nil {
		t.Fatalf("skip must not write a view-mode cookie, got %+v", c)
	}
}

func TestWelcomeEndpointsNoOpWhenVisited(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := postForm(t, srv, "/welcome/complete", url.Values{
		"language": {"en"},
		"mode":     {"professional"},
	}, &http.Cookie{Name: prefs.KeyVisited, Value: "true"})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if c := responseCookie(rec, prefs.KeyLanguage); c != nil {
		t.Fatalf("closed flow must not commit selections, got %+v", c)
	}
}

func TestContactAPIThroughRouter(t *testing.T) {
	fake := &mail.Fake{ID: "msg_router"}
	srv := newTestRouter(t, fake)

	body := `{"name": "Aria", "email": "aria@example.com", "message": "hi", "viewMode": "freelance"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["emailId"] != "msg_router" {
		t.Fatalf("emailId = %q", out["emailId"])
	}
	if fake.Calls != 1 {
		t.Fatalf("mailer calls = %d", fake.Calls)
	}
}

func TestContactPageOmitsFreelanceFieldsInProfessionalMode(t *testing.T) {
	srv := newTestRouter(t, nil)

	doc := parseDoc(t, get(t, srv, "/contact"))
	if doc.Find(`#contact-form input[name="budget"]`).Length() != 1 {
		t.Fatalf("freelance contact form must ask for budget")
	}

	doc = parseDoc(t, get(t, srv, "/contact", &http.Cookie{Name: prefs.KeyViewMode, Value: "professional"}))
	if doc.Find(`#contact-form input[name="budget"]`).Length() != 0 {
		t.Fatalf("professional contact form must not ask for budget")
	}
}

func TestAboutPageRendersLocalizedBio(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := parseDoc(t, get(t, srv, "/about", &http.Cookie{Name: prefs.KeyLanguage, Value: "en"}))
	if doc.Find(".about .prose").Length() != 1 {
		t.Fatalf("expected rendered bio content")
	}
}

package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"lucavisser.dev/portfolio/internal/config"
	"lucavisser.dev/portfolio/internal/contact"
	"lucavisser.dev/portfolio/internal/content"
	"lucavisser.dev/portfolio/internal/i18n"
	"lucavisser.dev/portfolio/internal/mail"
	mw "lucavisser.dev/portfolio/internal/middleware"
	"lucavisser.dev/portfolio/internal/prefs"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	devMode      bool
	tmplCache    *template.Template

	i18nBundle *i18n.Bundle
	catalog    *content.Catalog
	sitePages  *content.Pages
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var addr string
	flag.StringVar(&addr, "addr", ":"+cfg.Server.Port, "HTTP listen address")
	flag.StringVar(&templatesDir, "templates", cfg.Site.TemplatesDir, "templates directory")
	flag.StringVar(&publicDir, "public", cfg.Site.PublicDir, "public assets directory")
	flag.Parse()

	devMode = cfg.Server.DevMode

	logger, err := newLogger(cfg.Server.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	i18nBundle, err = i18n.Load(cfg.Site.LocalesDir, prefs.DefaultLanguage)
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}
	catalog, err = content.Load(filepath.Join(cfg.Site.ContentDir, "data"))
	if err != nil {
		logger.Fatal("load content fixtures", zap.Error(err))
	}
	sitePages = content.NewPages(filepath.Join(cfg.Site.ContentDir, "pages"))

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	contactHandler := contact.NewHandler(newMailer(cfg.Mail), logger, cfg.Mail.Sender, cfg.Mail.Recipient)

	r := newRouter(logger, contactHandler, cfg.Server.Secure())

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	logger.Info("web listening", zap.String("addr", addr), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter(logger *zap.Logger, contactHandler *contact.Handler, secure bool) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(prefs.Middleware(secure))
	r.Use(mw.VaryLocale)
	r.Use(mw.AccessLog(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	// pages
	r.Get("/", HomeHandler)
	r.Get("/projects", ProjectsHandler)
	r.Get("/services", ServicesHandler)
	r.Get("/experience", ExperienceHandler)
	r.Get("/about", AboutHandler)
	r.Get("/contact", ContactPageHandler)

	// browser form endpoints share the CSRF double-submit check
	r.Group(func(r chi.Router) {
		r.Use(mw.CSRF(secure))
		r.Post("/prefs/language", SetLanguageHandler)
		r.Post("/prefs/view-mode", SetViewModeHandler)
		r.Post("/prefs/theme", SetThemeHandler)
		r.Post("/welcome/step", WelcomeStepHandler)
		r.Post("/welcome/back", WelcomeBackHandler)
		r.Post("/welcome/complete", WelcomeCompleteHandler)
		r.Post("/welcome/skip", WelcomeSkipHandler)
	})

	// JSON API
	r.Post("/api/contact", contactHandler.ServeHTTP)

	return r
}

func newMailer(cfg config.MailConfig) mail.Mailer {
	if cfg.UseSMTP() {
		return &mail.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}
	}
	return mail.NewResendClient(cfg.ResendAPIKey, cfg.ResendBaseURL)
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"t": func(lang prefs.Language, key string) string {
			return i18nBundle.T(lang, key)
		},
		"in": func(txt i18n.Text, lang prefs.Language) string {
			return txt.In(lang)
		},
	}
	// Recursively discover and parse all .tmpl files. ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes a named template. In dev mode, templates are reparsed on
// each request.
func render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var t *template.Template
	if devMode || tmplCache == nil {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	} else {
		t = tmplCache
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

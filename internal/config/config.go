// Package config assembles runtime configuration from the environment,
// organised by concern.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second

	defaultSender    = "Portfolio <hello@lucavisser.dev>"
	defaultRecipient = "luca@lucavisser.dev"
)

// Config captures all runtime configuration.
type Config struct {
	Server ServerConfig
	Mail   MailConfig
	Site   SiteConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Env          string // "local" or "prod"
	DevMode      bool
}

// MailConfig selects and authorizes the outbound email capability.
type MailConfig struct {
	ResendAPIKey  string
	ResendBaseURL string // override for tests
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	Sender        string
	Recipient     string
}

// SiteConfig holds paths to templates, assets, and authored content.
type SiteConfig struct {
	TemplatesDir string
	PublicDir    string
	LocalesDir   string
	ContentDir   string
}

// UseSMTP reports whether delivery should go through the SMTP relay instead
// of the Resend API.
func (m MailConfig) UseSMTP() bool {
	return m.ResendAPIKey == "" && m.SMTPHost != ""
}

// Secure reports whether cookies should carry the Secure attribute.
func (s ServerConfig) Secure() bool { return s.Env == "prod" }

// Load reads configuration from the environment. Defaults cover local
// development; prod deployments set PORTFOLIO_ENV=prod and a mail secret.
func Load() (Config, error) {
	port := getenv("PORTFOLIO_PORT", os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         port,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
			Env:          strings.ToLower(getenv("PORTFOLIO_ENV", "local")),
			DevMode:      os.Getenv("PORTFOLIO_DEV") != "" || os.Getenv("DEV") != "",
		},
		Mail: MailConfig{
			ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
			ResendBaseURL: os.Getenv("RESEND_BASE_URL"),
			SMTPHost:      os.Getenv("SMTP_HOST"),
			SMTPPort:      getenv("SMTP_PORT", "587"),
			SMTPUsername:  os.Getenv("SMTP_USER"),
			SMTPPassword:  os.Getenv("SMTP_PASS"),
			Sender:        getenv("MAIL_SENDER", defaultSender),
			Recipient:     getenv("MAIL_RECIPIENT", defaultRecipient),
		},
		Site: SiteConfig{
			TemplatesDir: getenv("PORTFOLIO_TEMPLATES", "templates"),
			PublicDir:    getenv("PORTFOLIO_PUBLIC", "public"),
			LocalesDir:   getenv("PORTFOLIO_LOCALES", "locales"),
			ContentDir:   getenv("PORTFOLIO_CONTENT", "content"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	if c.Mail.Sender == "" {
		missing = append(missing, "MAIL_SENDER")
	}
	if c.Mail.Recipient == "" {
		missing = append(missing, "MAIL_RECIPIENT")
	}
	// prod must have a real delivery path; local falls back to fake sends
	if c.Server.Env == "prod" && c.Mail.ResendAPIKey == "" && c.Mail.SMTPHost == "" {
		missing = append(missing, "RESEND_API_KEY or SMTP_HOST")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config validation failed: missing or invalid fields [%s]", strings.Join(missing, ", "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

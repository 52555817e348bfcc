package config

import (
	"fmt"
	"strings"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ModePermissive = "permissive"
	ModeStrict     = "strict"
)

type Config struct {
	DatabaseURL string
	Port        string
	Environment string
	LogLevel    string

	SignatureMode      string
	SignatureAlgorithm string

	EnableIssuance  bool
	AuditSchedule   string
	RenderDocuments bool
	CloudinaryURL   string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	// EnvFileLoaded reports whether a .env file was found; main logs it once
	// the logger exists.
	EnvFileLoaded bool
}

func (c *Config) Development() bool {
	return c.Environment == "development"
}

func (c *Config) EmailEnabled() bool {
	return c.BrevoAPIKey != "" && c.EmailSender != "" && c.EmailSenderName != ""
}

// Load reads .env (optional) and the process environment. A missing
// DATABASE_URL or an unknown enumeration value is a configuration error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	loaded := godotenv.Load(envFiles...) == nil

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SIGNATURE_MODE", ModePermissive)
	v.SetDefault("SIGNATURE_ALGORITHM", "sha256")
	v.SetDefault("ENABLE_ISSUANCE", false)
	v.SetDefault("AUDIT_SCHEDULE", "@every 1h")
	v.SetDefault("RENDER_DOCUMENTS", false)

	c := &Config{
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		Port:               v.GetString("PORT"),
		Environment:        strings.ToLower(v.GetString("APP_ENV")),
		LogLevel:           v.GetString("LOG_LEVEL"),
		SignatureMode:      strings.ToLower(v.GetString("SIGNATURE_MODE")),
		SignatureAlgorithm: strings.ToLower(v.GetString("SIGNATURE_ALGORITHM")),
		EnableIssuance:     v.GetBool("ENABLE_ISSUANCE"),
		AuditSchedule:      v.GetString("AUDIT_SCHEDULE"),
		RenderDocuments:    v.GetBool("RENDER_DOCUMENTS"),
		CloudinaryURL:      v.GetString("CLOUDINARY_URL"),
		BrevoAPIKey:        v.GetString("BREVO_API_KEY"),
		EmailSender:        v.GetString("EMAIL_SENDER"),
		EmailSenderName:    v.GetString("EMAIL_SENDER_NAME"),
		EnvFileLoaded:      loaded,
	}

	if c.DatabaseURL == "" {
		return nil, apperrors.ErrDatabaseURLMissing
	}

	switch c.SignatureMode {
	case ModePermissive, ModeStrict:
	default:
		return nil, apperrors.Configuration(fmt.Sprintf("SIGNATURE_MODE must be %q or %q, got %q", ModePermissive, ModeStrict, c.SignatureMode))
	}

	switch c.SignatureAlgorithm {
	case "sha256", "sha3-256", "blake2b-256":
	default:
		return nil, apperrors.Configuration(fmt.Sprintf("unsupported SIGNATURE_ALGORITHM %q", c.SignatureAlgorithm))
	}

	return c, nil
}

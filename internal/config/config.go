package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backends selectable through the "backend" key
const (
	BackendSQL    = "sql"
	BackendHosted = "hosted"
)

// Config holds the application configuration
type Config struct {
	ServiceName string
	AppVersion  string
	ListenPort  string
	LogLevel    string

	Backend       string
	DBDriver      string
	DatabaseURL   string
	HostedURL     string
	HostedAPIKey  string
	SessionSecret string
	SessionTTL    time.Duration
	WizardTTL     time.Duration
	CookieSecure  bool

	WeddingDate     string
	WeddingLocation string
	BrideName       string
	GroomName       string

	WhatsAppEnabled bool
	WhatsAppDataDir string
	WhatsAppNotify  []string
}

// SetDefaults registers every key's default value on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "wedding-rsvp")
	v.SetDefault("app_version", "dev")
	v.SetDefault("listen_port", "8080")
	v.SetDefault("log_level", "info")

	v.SetDefault("backend", BackendSQL)
	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("database_url", "data/wedding.db")
	v.SetDefault("hosted_url", "")
	v.SetDefault("hosted_api_key", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("wizard_ttl", 2*time.Hour)
	v.SetDefault("cookie_secure", false)

	v.SetDefault("wedding_date", "2026-06-20T16:00:00Z")
	v.SetDefault("wedding_location", "Venue TBD")
	v.SetDefault("bride_name", "Bride")
	v.SetDefault("groom_name", "Groom")

	v.SetDefault("whatsapp_enabled", false)
	v.SetDefault("whatsapp_data_dir", "data")
	v.SetDefault("whatsapp_notify", "")
}

// LoadConfig loads configuration from a .env file (if present), environment
// variables prefixed with WEDDING_, or defaults
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("wedding")
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServiceName: v.GetString("service_name"),
		AppVersion:  v.GetString("app_version"),
		ListenPort:  v.GetString("listen_port"),
		LogLevel:    v.GetString("log_level"),

		Backend:       strings.ToLower(v.GetString("backend")),
		DBDriver:      v.GetString("db_driver"),
		DatabaseURL:   v.GetString("database_url"),
		HostedURL:     strings.TrimRight(v.GetString("hosted_url"), "/"),
		HostedAPIKey:  v.GetString("hosted_api_key"),
		SessionSecret: v.GetString("session_secret"),
		SessionTTL:    v.GetDuration("session_ttl"),
		WizardTTL:     v.GetDuration("wizard_ttl"),
		CookieSecure:  v.GetBool("cookie_secure"),

		WeddingDate:     v.GetString("wedding_date"),
		WeddingLocation: v.GetString("wedding_location"),
		BrideName:       v.GetString("bride_name"),
		GroomName:       v.GetString("groom_name"),

		WhatsAppEnabled: v.GetBool("whatsapp_enabled"),
		WhatsAppDataDir: v.GetString("whatsapp_data_dir"),
		WhatsAppNotify:  splitList(v.GetString("whatsapp_notify")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations viper cannot express as defaults
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQL:
		if c.DBDriver != "sqlite3" && c.DBDriver != "postgres" {
			return fmt.Errorf("unsupported db_driver %q: must be sqlite3 or postgres", c.DBDriver)
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the %s backend", BackendSQL)
		}
	case BackendHosted:
		if c.HostedURL == "" || c.HostedAPIKey == "" {
			return fmt.Errorf("hosted_url and hosted_api_key are required for the %s backend", BackendHosted)
		}
	default:
		return fmt.Errorf("unsupported backend %q: must be %s or %s", c.Backend, BackendSQL, BackendHosted)
	}
	return nil
}

// WeddingTime parses the configured wedding date; the zero time is returned
// when the value is free text rather than RFC 3339
func (c *Config) WeddingTime() time.Time {
	t, err := time.Parse(time.RFC3339, c.WeddingDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

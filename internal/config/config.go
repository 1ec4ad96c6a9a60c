package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/okaya/ledgerdesk/internal/model"
)

// Config holds application configuration.
type Config struct {
	API          APIConfig
	Auth         AuthConfig
	Capabilities CapabilityConfig
	Journal      JournalConfig
	UI           UIConfig
}

// APIConfig points at the ledger service.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// AuthConfig holds session-login credentials. The password itself lives in an
// env var named by PasswordEnv, never in the config file.
type AuthConfig struct {
	Email       string `mapstructure:"email"`
	PasswordEnv string `mapstructure:"password_env"`
}

// CapabilityConfig mirrors the flags the hosting environment grants the
// session: role plus export/restore permissions. The client only respects
// these; the server is the one that enforces them.
type CapabilityConfig struct {
	Role       string `mapstructure:"role"`
	CanExport  bool   `mapstructure:"can_export"`
	CanRestore bool   `mapstructure:"can_restore"`
}

// JournalConfig holds local activity-journal settings.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string `mapstructure:"timezone"`
}

// Load reads configuration from file and env. Env var overrides use prefix LEDGERDESK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8000/api/v1/")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("auth.email", "")
	v.SetDefault("auth.password_env", "LEDGERDESK_PASSWORD")
	v.SetDefault("capabilities.role", model.RoleUser)
	v.SetDefault("capabilities.can_export", false)
	v.SetDefault("capabilities.can_restore", false)
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "ledgerdesk", "journal.db"))
	v.SetDefault("ui.date_format", "02.01.2006 15:04")
	v.SetDefault("ui.currency_symbol", "₺")
	v.SetDefault("ui.timezone", "Europe/Istanbul")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LEDGERDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ledgerdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LEDGERDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// SessionCapabilities converts the configured flags into the value threaded
// through the lifecycle controller and the export limiter. Role spellings are
// normalized; anything unknown degrades to plain User.
func (c Config) SessionCapabilities() model.Capabilities {
	role := model.RoleUser
	switch strings.ToLower(strings.TrimSpace(c.Capabilities.Role)) {
	case "admin":
		role = model.RoleAdmin
	case "manager":
		role = model.RoleManager
	}
	return model.Capabilities{
		Role:       role,
		CanExport:  c.Capabilities.CanExport,
		CanRestore: c.Capabilities.CanRestore,
	}
}

// Password resolves the session password from the configured env var.
func (c Config) Password() string {
	env := strings.TrimSpace(c.Auth.PasswordEnv)
	if env == "" {
		env = "LEDGERDESK_PASSWORD"
	}
	return os.Getenv(env)
}

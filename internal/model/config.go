package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig holds settings for the remote mailbox API.
type APIConfig struct {
	// BaseURL is the root URL of the mailbox API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the per-request timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// OAuthConfig holds settings for the identity-provider login flow.
type OAuthConfig struct {
	// ClientID is the application ID registered with the identity provider.
	ClientID string `mapstructure:"client_id" yaml:"client_id"`

	// Authority is the base URL of the identity provider's OAuth2 endpoints.
	Authority string `mapstructure:"authority" yaml:"authority"`

	// RedirectPort is the localhost port the login flow listens on.
	RedirectPort int `mapstructure:"redirect_port" yaml:"redirect_port"`

	// Scopes are the access scopes requested at login.
	Scopes []string `mapstructure:"scopes" yaml:"scopes"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	OAuth   OAuthConfig   `mapstructure:"oauth" yaml:"oauth"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/webmail/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "webmail", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "http://localhost:3000/api",
			TimeoutSec: 30,
		},
		OAuth: OAuthConfig{
			Authority:    "https://login.microsoftonline.com/common/oauth2/v2.0",
			RedirectPort: 3003,
			Scopes: []string{
				"openid", "profile", "email", "offline_access",
			},
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", "http://localhost:3000/api")
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("oauth.authority", "https://login.microsoftonline.com/common/oauth2/v2.0")
	v.SetDefault("oauth.redirect_port", 3003)
	v.SetDefault("oauth.scopes", []string{"openid", "profile", "email", "offline_access"})
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("oauth", cfg.OAuth)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

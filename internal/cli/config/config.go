package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	servercfg "github.com/gperfar/chatbot-admin/internal/config"
)

const (
	DefaultAPIURL  = "http://localhost:8000/api"
	DefaultTimeout = 30 * time.Second

	ThemeLight = "light"
	ThemeDark  = "dark"

	envPrefix = "CHATADMIN"
)

// Config stores CLI configuration
type Config struct {
	APIURL  string              `mapstructure:"api_url"`
	Timeout time.Duration       `mapstructure:"timeout"`
	Theme   string              `mapstructure:"theme"`
	Log     servercfg.LogConfig `mapstructure:"log"`

	path string
}

// DefaultPath returns the configuration file path (~/.chatadmin/config.yaml)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".chatadmin", "config.yaml"), nil
}

// Load reads the configuration file at path (DefaultPath when empty),
// then .env and CHATADMIN_* environment overrides. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("theme", ThemeLight)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	return nil
}

// ValidateTheme checks a theme name
func ValidateTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("invalid theme: %s, must be '%s' or '%s'", theme, ThemeLight, ThemeDark)
	}
	return nil
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// SetTheme persists the theme preference
func (c *Config) SetTheme(theme string) error {
	if err := ValidateTheme(theme); err != nil {
		return err
	}
	if err := c.persist("theme", theme); err != nil {
		return err
	}
	c.Theme = theme
	return nil
}

// SetAPIURL persists the API base URL
func (c *Config) SetAPIURL(apiURL string) error {
	if strings.TrimSpace(apiURL) == "" {
		return fmt.Errorf("api_url is required")
	}
	if err := c.persist("api_url", apiURL); err != nil {
		return err
	}
	c.APIURL = apiURL
	return nil
}

// persist updates one key in the file only, so environment overrides
// never end up written to disk
func (c *Config) persist(key string, value any) error {
	v := viper.New()
	v.SetConfigFile(c.path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	v.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Chmod(c.path, 0600)
}

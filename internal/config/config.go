package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location
const EnvConfigPath = "LANES_CONFIG"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Events   EventsConfig   `yaml:"events"`
	S3       S3Config       `yaml:"s3"`
	Theme    ColorScheme    `yaml:"theme"`
}

// DatabaseConfig locates the sqlite database
type DatabaseConfig struct {
	Path        string        `yaml:"path"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ServerConfig controls the HTTP server started by `lanes serve`
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig controls the slog handler. An empty File logs to stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file"`
}

// EventsConfig enables change notifications over redis pub/sub.
// Events are disabled when RedisAddr is empty.
type EventsConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	Channel   string `yaml:"channel"`
}

// Enabled reports whether a broker is configured
func (e EventsConfig) Enabled() bool {
	return e.RedisAddr != ""
}

// S3Config points board exports at an S3-compatible bucket.
// Exports are disabled when Bucket is empty.
type S3Config struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
	Prefix       string `yaml:"prefix"`
}

// Enabled reports whether exports have somewhere to go
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		return Default(), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at path, falling back to defaults when it is missing
func LoadFrom(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return &config, nil
}

// Save writes the config to path, creating parent directories
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

// Path returns the path to the config file
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lanes", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "lanes", "config.yaml"), nil
}

// defaultDatabasePath returns ~/.lanes/lanes.db, or a relative path if home is unknown
func defaultDatabasePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "lanes.db"
	}
	return filepath.Join(homeDir, ".lanes", "lanes.db")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath()
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = 5 * time.Second
	}

	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Events.Channel == "" {
		c.Events.Channel = "lanes:events"
	}

	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}

	c.Theme.ApplyDefaults()
}

// Validate rejects values the application cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Database.BusyTimeout < 0 {
		errs = append(errs, errors.New("database.busy_timeout must not be negative"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}

	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		errs = append(errs, errors.New("s3.bucket is required when s3.endpoint is set"))
	}
	if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		errs = append(errs, errors.New("s3.access_key and s3.secret_key must be set together"))
	}

	return errors.Join(errs...)
}

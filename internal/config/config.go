package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override the config file
const (
	EnvEndpoint = "LOGSCOUT_ENDPOINT"
	EnvTimeout  = "LOGSCOUT_TIMEOUT"
	EnvLogLevel = "LOG_LEVEL"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration.
//
// ScrollThreshold is counted in result rows (one record per row). The next
// page is requested once fewer rows than this remain below the viewport, so
// the default of 100 prefetches about two pages of 50 ahead of the reader.
type Config struct {
	Version         int        `toml:"version"`
	Endpoint        string     `toml:"endpoint"`
	RequestTimeout  Duration   `toml:"request_timeout"`
	ScrollThreshold int        `toml:"scroll_threshold"`
	LogFile         string     `toml:"log_file"`
	LogLevel        string     `toml:"log_level"`
	UISettings      UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelp bool `toml:"show_help"`
	Mouse    bool `toml:"mouse"`
}

// Duration lets time.Duration round-trip through TOML as "10s"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/logscout/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "logscout", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the bound config file, writing one with defaults if it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			return cfg, fmt.Errorf("failed to write default config: %w", err)
		}
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save writes the config to the bound path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Fields missing
// from the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:         1,
		Endpoint:        "http://localhost:3000",
		RequestTimeout:  Duration{10 * time.Second},
		ScrollThreshold: 100,
		LogFile:         "logscout.log",
		LogLevel:        "info",
		UISettings: UISettings{
			ShowHelp: true,
			Mouse:    true,
		},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config fields from environment variables found via lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		c.Endpoint = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.RequestTimeout = Duration{d}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// parseTimeout accepts a Go duration or a bare number of seconds
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate checks the fields the client depends on
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: endpoint: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: endpoint %q must be an http or https URL", ErrInvalidConfig, c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: endpoint %q has no host", ErrInvalidConfig, c.Endpoint)
	}
	if c.RequestTimeout.Duration <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	if c.ScrollThreshold < 0 {
		return fmt.Errorf("%w: scroll_threshold must not be negative", ErrInvalidConfig)
	}
	return nil
}

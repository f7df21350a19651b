package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// AppName names the config directory and the environment prefix
	AppName = "jfind"

	DefaultOutputFormat   = "json"
	DefaultTimeoutSeconds = 5
	DefaultWorkers        = 1
)

// Config holds the application configuration
type Config struct {
	SearchPaths    []string     `json:"search_paths" mapstructure:"search_paths"`       // Extra roots scanned besides the OS default
	OutputFormat   string       `json:"output_format" mapstructure:"output_format"`     // Default scan output format
	TimeoutSeconds int          `json:"timeout_seconds" mapstructure:"timeout_seconds"` // Bounded wait for classification to finish
	Workers        int          `json:"workers" mapstructure:"workers"`                 // Classification workers
	UpdateConfig   UpdateConfig `json:"update_config" mapstructure:"update_config"`     // Auto-update configuration
	configPath     string
}

// UpdateConfig holds settings for auto-update feature
type UpdateConfig struct {
	Enabled     bool      `json:"enabled" mapstructure:"enabled"`           // Master toggle for update functionality
	AutoCheck   bool      `json:"auto_check" mapstructure:"auto_check"`     // Check for updates on startup
	LastCheck   time.Time `json:"last_check" mapstructure:"last_check"`     // Last time update check was performed
	SkipVersion string    `json:"skip_version" mapstructure:"skip_version"` // Version user chose to skip
}

// Default returns the built-in configuration bound to the user's config file
func Default() *Config {
	return &Config{
		SearchPaths:    []string{},
		OutputFormat:   DefaultOutputFormat,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Workers:        DefaultWorkers,
		UpdateConfig:   UpdateConfig{Enabled: true, AutoCheck: true},
		configPath:     getConfigPath(),
	}
}

// Load loads the configuration from the user's config directory
func Load() (*Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom loads the configuration stored at configPath. A missing file yields
// the defaults. JFIND_* environment variables override file values.
func LoadFrom(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	v.SetDefault("search_paths", []string{})
	v.SetDefault("output_format", DefaultOutputFormat)
	v.SetDefault("timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("update_config.enabled", true)
	v.SetDefault("update_config.auto_check", true)
	v.SetDefault("update_config.last_check", time.Time{})
	v.SetDefault("update_config.skip_version", "")

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		// Remove BOM if present (UTF-8 BOM is EF BB BF)
		// This handles files created by PowerShell with Set-Content -Encoding UTF8
		data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
		if len(bytes.TrimSpace(data)) > 0 {
			if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.SearchPaths = cleanPaths(cfg.SearchPaths)
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	cfg.configPath = configPath
	return cfg, nil
}

// cleanPaths drops empty entries and case-insensitive duplicates
func cleanPaths(paths []string) []string {
	cleaned := make([]string, 0, len(paths))
	seen := make(map[string]bool)
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, p)
	}
	return cleaned
}

// Path returns the file the configuration is saved to
func (c *Config) Path() string { return c.configPath }

// Timeout returns the classification wait as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	// Ensure config directory exists
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(c.configPath, data, 0644)
}

// AddSearchPath adds a search path for auto-detection
func (c *Config) AddSearchPath(path string) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return
	}

	if c.HasSearchPath(path) {
		return
	}

	c.SearchPaths = append(c.SearchPaths, path)
}

// RemoveSearchPath removes a search path
func (c *Config) RemoveSearchPath(path string) {
	path = filepath.Clean(path)

	for i, p := range c.SearchPaths {
		if strings.EqualFold(p, path) {
			c.SearchPaths = append(c.SearchPaths[:i], c.SearchPaths[i+1:]...)
			return
		}
	}
}

// HasSearchPath checks if a path exists in search paths
func (c *Config) HasSearchPath(path string) bool {
	path = filepath.Clean(path)

	for _, p := range c.SearchPaths {
		if strings.EqualFold(p, path) {
			return true
		}
	}
	return false
}

// getConfigPath returns the path to the configuration file
// Following XDG Base Directory specification
func getConfigPath() string {
	// Try XDG_CONFIG_HOME first (standard on Unix systems)
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome != "" {
		return filepath.Join(configHome, AppName, AppName+".json")
	}

	// Fallback to $HOME/.config/jfind/jfind.json (XDG default)
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return filepath.Join(homeDir, ".config", AppName, AppName+".json")
}

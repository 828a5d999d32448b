package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	perrors "github.com/zhubert/snappy/internal/errors"
)

const (
	// DefaultHost is the message service base URL used when nothing is configured.
	DefaultHost = "http://localhost:5000"

	// DefaultStorageKey is the key the logged-in identity is stored under.
	DefaultStorageKey = "chat-app-current-user"

	// DefaultTimeoutSeconds bounds each request to the message service.
	DefaultTimeoutSeconds = 15

	// envPrefix namespaces environment overrides, e.g. SNAPPY_HOST.
	envPrefix = "snappy"
)

// Config holds the application configuration
type Config struct {
	Host                 string `json:"host" validate:"required,url"`
	StorageKey           string `json:"storage_key" validate:"required"`
	DataDir              string `json:"data_dir,omitempty"`
	Token                string `json:"token,omitempty"` // Optional bearer token for the message service
	TimeoutSeconds       int    `json:"timeout_seconds,omitempty" validate:"gte=0,lte=600"`
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for new unread messages
	Theme                string `json:"theme,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// envOverrides are read from SNAPPY_* variables and win over the file.
// Field names map to keys via split_words, e.g. StorageKey -> SNAPPY_STORAGE_KEY.
type envOverrides struct {
	Host          string
	StorageKey    string `split_words:"true"`
	DataDir       string `split_words:"true"`
	Token         string
	Timeout       time.Duration
	Notifications *bool
	Theme         string
}

var validate = validator.New()

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".snappy"), nil
}

// DefaultPath returns the path of the config file in the user's home directory.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns a config with defaults that will be saved to path.
func New(path string) *Config {
	return &Config{
		Host:           DefaultHost,
		StorageKey:     DefaultStorageKey,
		TimeoutSeconds: DefaultTimeoutSeconds,
		filePath:       path,
	}
}

// Load reads the config from the default path, applies environment
// overrides, and validates the result.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, perrors.ConfigLoadFailed("~/.snappy/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := New(path)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, perrors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, perrors.ConfigLoadFailed(path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays SNAPPY_* environment variables.
// Only called during Load, before the Config is shared.
func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return err
	}
	if env.Host != "" {
		c.Host = env.Host
	}
	if env.StorageKey != "" {
		c.StorageKey = env.StorageKey
	}
	if env.DataDir != "" {
		c.DataDir = env.DataDir
	}
	if env.Token != "" {
		c.Token = env.Token
	}
	if env.Timeout != 0 {
		// Timeouts are stored in whole seconds
		if env.Timeout < time.Second {
			return fmt.Errorf("SNAPPY_TIMEOUT must be at least 1s, got %s", env.Timeout)
		}
		c.TimeoutSeconds = int(env.Timeout.Round(time.Second) / time.Second)
	}
	if env.Notifications != nil {
		c.NotificationsEnabled = *env.Notifications
	}
	if env.Theme != "" {
		c.Theme = env.Theme
	}
	return nil
}

// ensureDefaults fills fields left empty by an older or hand-written file.
func (c *Config) ensureDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.StorageKey == "" {
		c.StorageKey = DefaultStorageKey
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := validate.Struct(c); err != nil {
		return perrors.ConfigInvalid(err.Error())
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return perrors.ConfigSaveFailed("", os.ErrInvalid)
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetHost returns the message service base URL
func (c *Config) GetHost() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Host
}

// SetHost sets the message service base URL
func (c *Config) SetHost(host string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Host = host
}

// GetStorageKey returns the key the identity is stored under
func (c *Config) GetStorageKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.StorageKey
}

// GetToken returns the bearer token, if any
func (c *Config) GetToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Token
}

// GetTimeout returns the per-request timeout
func (c *Config) GetTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetTheme returns the configured theme name, empty for the default
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// StoreDir returns the directory of the persistent identity store.
// Defaults to a "store" directory next to the config file.
func (c *Config) StoreDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "store")
	}
	if c.filePath != "" {
		return filepath.Join(filepath.Dir(c.filePath), "store")
	}
	return "store"
}

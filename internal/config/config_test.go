package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	perrors "github.com/zhubert/snappy/internal/errors"
)

// clearEnv blanks every SNAPPY_* override for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"SNAPPY_HOST", "SNAPPY_STORAGE_KEY", "SNAPPY_DATA_DIR", "SNAPPY_TOKEN", "SNAPPY_TIMEOUT", "SNAPPY_NOTIFICATIONS", "SNAPPY_THEME"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.GetHost() != DefaultHost {
		t.Errorf("host = %q, want %q", cfg.GetHost(), DefaultHost)
	}
	if cfg.GetStorageKey() != DefaultStorageKey {
		t.Errorf("storage key = %q, want %q", cfg.GetStorageKey(), DefaultStorageKey)
	}
	if cfg.GetTimeout() != DefaultTimeoutSeconds*time.Second {
		t.Errorf("timeout = %v", cfg.GetTimeout())
	}
	if cfg.GetNotificationsEnabled() {
		t.Error("notifications should default to off")
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.StoreDir() != filepath.Join(filepath.Dir(path), "store") {
		t.Errorf("StoreDir() = %q", cfg.StoreDir())
	}
}

func TestLoadFrom_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"host":                  "https://chat.example.com",
		"storage_key":           "who",
		"data_dir":              "/var/lib/snappy",
		"timeout_seconds":       3,
		"notifications_enabled": true,
	})

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.GetHost() != "https://chat.example.com" {
		t.Errorf("host = %q", cfg.GetHost())
	}
	if cfg.GetStorageKey() != "who" {
		t.Errorf("storage key = %q", cfg.GetStorageKey())
	}
	if cfg.GetTimeout() != 3*time.Second {
		t.Errorf("timeout = %v", cfg.GetTimeout())
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
	if cfg.StoreDir() != filepath.Join("/var/lib/snappy", "store") {
		t.Errorf("StoreDir() = %q", cfg.StoreDir())
	}
}

func TestLoadFrom_EmptyFieldsGetDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), map[string]any{"host": ""})

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.GetHost() != DefaultHost || cfg.GetStorageKey() != DefaultStorageKey {
		t.Errorf("empty fields should be defaulted, got host=%q key=%q", cfg.GetHost(), cfg.GetStorageKey())
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), map[string]any{"host": "http://file-host:1"})

	t.Setenv("SNAPPY_HOST", "http://env-host:2")
	t.Setenv("SNAPPY_STORAGE_KEY", "env-key")
	t.Setenv("SNAPPY_TOKEN", "tkn")
	t.Setenv("SNAPPY_TIMEOUT", "2s")
	t.Setenv("SNAPPY_NOTIFICATIONS", "true")
	t.Setenv("SNAPPY_THEME", "light")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.GetHost() != "http://env-host:2" {
		t.Errorf("env should win over file, host = %q", cfg.GetHost())
	}
	if cfg.GetStorageKey() != "env-key" {
		t.Errorf("storage key = %q", cfg.GetStorageKey())
	}
	if cfg.GetToken() != "tkn" {
		t.Errorf("token = %q", cfg.GetToken())
	}
	if cfg.GetTimeout() != 2*time.Second {
		t.Errorf("timeout = %v", cfg.GetTimeout())
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("notifications should be enabled from env")
	}
	if cfg.GetTheme() != "light" {
		t.Errorf("theme = %q", cfg.GetTheme())
	}
}

func TestLoadFrom_BadEnv(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
	}{
		{"unparseable", "soon"},
		{"sub-second", "400ms"},
		{"negative", "-2s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SNAPPY_TIMEOUT", tt.timeout)

			_, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
			if !perrors.Is(err, perrors.KindConfig) {
				t.Errorf("SNAPPY_TIMEOUT=%s should be a config error, got %v", tt.timeout, err)
			}
		})
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	_, err := LoadFrom(path)
	if !perrors.Is(err, perrors.KindConfig) {
		t.Errorf("invalid JSON should be a config error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https host", func(c *Config) { c.Host = "https://example.com/chat" }, false},
		{"empty host", func(c *Config) { c.Host = "" }, true},
		{"not a url", func(c *Config) { c.Host = "localhost five thousand" }, true},
		{"empty storage key", func(c *Config) { c.StorageKey = "" }, true},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, true},
		{"huge timeout", func(c *Config) { c.TimeoutSeconds = 3600 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New("")
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !perrors.Is(err, perrors.KindInvalid) {
				t.Errorf("Validate() error kind = %v, want Invalid", perrors.GetKind(err))
			}
		})
	}
}

func TestLoadFrom_InvalidHostInFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), map[string]any{"host": "::nope::"})

	if _, err := LoadFrom(path); !perrors.Is(err, perrors.KindInvalid) {
		t.Errorf("invalid host should fail validation, got %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := New(path)
	cfg.SetHost("http://saved:9")
	cfg.SetNotificationsEnabled(true)
	cfg.SetTheme("nord")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.GetHost() != "http://saved:9" {
		t.Errorf("host = %q", loaded.GetHost())
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("notifications should round-trip")
	}
	if loaded.GetTheme() != "nord" {
		t.Errorf("theme = %q, want nord", loaded.GetTheme())
	}
}

func TestSave_NoPath(t *testing.T) {
	if err := New("").Save(); !perrors.Is(err, perrors.KindConfig) {
		t.Errorf("Save() without a path should fail, got %v", err)
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := New("")
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg.SetHost("http://h:1")
				cfg.SetNotificationsEnabled(j%2 == 0)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = cfg.GetHost()
				_ = cfg.GetNotificationsEnabled()
				_ = cfg.StoreDir()
			}
		}()
	}
	wg.Wait()
}

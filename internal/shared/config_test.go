package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./xerces.db" {
			t.Errorf("expected database path ./xerces.db, got %s", config.Database.Path)
		}
		if config.Catalog.BaseURL != "http://ws.audioscrobbler.com/2.0/" {
			t.Errorf("expected catalog base URL, got %s", config.Catalog.BaseURL)
		}
		if config.Storage.Key != "albums" {
			t.Errorf("expected storage key albums, got %s", config.Storage.Key)
		}
		if config.Catalog.Timeout() != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", config.Catalog.Timeout())
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[catalog]
api_key = "test_api_key"
base_url = "http://localhost:9090/2.0/"
timeout_seconds = 3

[database]
path = "/custom/path.db"

[storage]
key = "my_albums"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Catalog.APIKey != "test_api_key" {
			t.Errorf("expected api key test_api_key, got %s", config.Catalog.APIKey)
		}
		if config.Catalog.Timeout() != 3*time.Second {
			t.Errorf("expected 3s timeout, got %v", config.Catalog.Timeout())
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Storage.Key != "my_albums" {
			t.Errorf("expected storage key my_albums, got %s", config.Storage.Key)
		}
		if config.Log.Level != "info" {
			t.Errorf("unset sections should keep defaults, got log level %q", config.Log.Level)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Catalog.APIKey = "saved_key"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Catalog.APIKey != "saved_key" {
			t.Errorf("expected saved_key, got %s", loaded.Catalog.APIKey)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tt := []struct {
			name   string
			mutate func(*Config)
		}{
			{name: "empty base url", mutate: func(c *Config) { c.Catalog.BaseURL = " " }},
			{name: "empty database path", mutate: func(c *Config) { c.Database.Path = "" }},
			{name: "empty storage key", mutate: func(c *Config) { c.Storage.Key = "" }},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				config := DefaultConfig()
				tc.mutate(config)

				err := config.Validate()
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env_key")
		t.Setenv(EnvDatabasePath, "/tmp/env.db")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Catalog.APIKey != "env_key" {
			t.Errorf("expected env_key, got %s", config.Catalog.APIKey)
		}
		if config.Database.Path != "/tmp/env.db" {
			t.Errorf("expected /tmp/env.db, got %s", config.Database.Path)
		}
	})

	t.Run("HasAPIKey", func(t *testing.T) {
		tc := []struct {
			key  string
			want bool
		}{
			{key: "", want: false},
			{key: "  ", want: false},
			{key: ExampleAPIKey, want: false},
			{key: "0123abcd", want: true},
		}
		for _, tt := range tc {
			if got := (CatalogConfig{APIKey: tt.key}).HasAPIKey(); got != tt.want {
				t.Errorf("HasAPIKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		}
	})

	t.Run("LoadEnv", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("XERCES_TEST_DOTENV=from_file\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("XERCES_TEST_DOTENV") })

		if err := LoadEnv(envPath, filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if got := os.Getenv("XERCES_TEST_DOTENV"); got != "from_file" {
			t.Errorf("expected from_file, got %q", got)
		}
	})
}

// Package config loads the console configuration: a JSON file under
// ~/.plumbops plus environment overrides (a local .env file is honored for
// development setups).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the development fallback used when nothing is
// configured.
const DefaultAPIBaseURL = "https://localhost:7227/api/v1"

// Config represents the flat PlumbOps console configuration.
type Config struct {
	// APIBaseURL is the root of the remote API, including the version
	// prefix, e.g. "https://ops.example.com/api/v1".
	APIBaseURL string `json:"api_base_url"`

	// SearchQuietMs overrides the autocomplete debounce quiet period in
	// milliseconds. Zero means the built-in default.
	SearchQuietMs int `json:"search_quiet_ms,omitempty"`
}

// Dir returns the configuration directory, ~/.plumbops.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".plumbops"), nil
}

// Load reads config.json from dir and applies environment overrides.
// A missing file is not an error; defaults apply. Precedence is
// environment > file > defaults.
func Load(dir string) (*Config, error) {
	// Development convenience: pick up a .env in the working directory.
	_ = godotenv.Load()

	cfg := &Config{APIBaseURL: DefaultAPIBaseURL}

	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// keep defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if v := os.Getenv("PLUMBOPS_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	return cfg, nil
}

// Save writes config.json to dir, creating the directory if needed.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

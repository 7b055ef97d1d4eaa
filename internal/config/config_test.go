package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Config{APIBaseURL: "https://ops.example.com/api/v1", SearchQuietMs: 300}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://ops.example.com/api/v1" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SearchQuietMs != 300 {
		t.Errorf("SearchQuietMs = %d, want 300", cfg.SearchQuietMs)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Config{APIBaseURL: "https://file.example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("PLUMBOPS_API_URL", "https://env.example.com")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://env.example.com" {
		t.Errorf("APIBaseURL = %q, want env override", cfg.APIBaseURL)
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load(corrupt) = nil error, want parse failure")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Cache.Size != 1024 {
		t.Errorf("expected Cache.Size=1024, got %d", cfg.Cache.Size)
	}
	if cfg.Index.Encoding != "utf-8" {
		t.Errorf("expected Encoding=utf-8, got %s", cfg.Index.Encoding)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected Output.Format=text, got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rulesplit.yaml")

	content := `
tokenizer:
  keep_dot: [Prof, Jr]
  abbreviations:
    "won't": [will, not]
index:
  encoding: latin1
  workers: 2
cache:
  size: 16
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Index.Encoding != "latin1" {
		t.Errorf("expected Encoding=latin1, got %s", cfg.Index.Encoding)
	}
	if cfg.Index.Workers != 2 {
		t.Errorf("expected Workers=2, got %d", cfg.Index.Workers)
	}
	if cfg.Cache.Size != 16 {
		t.Errorf("expected Cache.Size=16, got %d", cfg.Cache.Size)
	}
	// Unset sections keep their defaults.
	if cfg.Output.Format != "text" {
		t.Errorf("expected Output.Format=text, got %s", cfg.Output.Format)
	}

	rules := cfg.Rules()
	if _, ok := rules.KeepDot["Prof"]; !ok {
		t.Error("expected Prof in keep-dot set")
	}
	if _, ok := rules.KeepDot["Dr"]; !ok {
		t.Error("expected default Dr kept when merging")
	}
	if got := rules.Abbreviations["won't"]; len(got) != 2 || got[0] != "will" {
		t.Errorf("unexpected won't expansion: %v", got)
	}
}

func TestLoad_InvalidAbbreviation(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rulesplit.yaml")

	content := `
tokenizer:
  abbreviations:
    "gonna": []
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRules_ReplaceDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tokenizer.ReplaceDefaults = true
	cfg.Tokenizer.KeepDot = []string{"Dr"}

	rules := cfg.Rules()
	if len(rules.KeepDot) != 1 {
		t.Errorf("expected only configured keep-dot entries, got %v", rules.KeepDotList())
	}
	if len(rules.Abbreviations) != 0 {
		t.Errorf("expected no abbreviations, got %d", len(rules.Abbreviations))
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDataDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".rulesplit", "config.yaml")

	content := `
output:
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("expected Output.Format=json, got %s", cfg.Output.Format)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rulesplit.yaml")
	cfg := DefaultConfig()
	cfg.Cache.Size = 7

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Cache.Size != 7 {
		t.Errorf("expected Cache.Size=7, got %d", loaded.Cache.Size)
	}
}

func TestStoreDBPath(t *testing.T) {
	path := StoreDBPath("/home/user/corpus")
	expected := filepath.Join("/home/user/corpus", ".rulesplit", "corpus.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

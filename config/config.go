package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"rulesplit/internal/adapter/analyzer"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for the rulesplit tool.
type Config struct {
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Index     IndexConfig     `yaml:"index"`
	Cache     CacheConfig     `yaml:"cache"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TokenizerConfig extends or replaces the built-in rule tables.
type TokenizerConfig struct {
	KeepDot         []string            `yaml:"keep_dot"`
	Abbreviations   map[string][]string `yaml:"abbreviations"`
	ReplaceDefaults bool                `yaml:"replace_defaults"` // use only the tables above
}

// IndexConfig holds corpus indexing configuration.
type IndexConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	Encoding string   `yaml:"encoding"` // "utf-8", "latin1", "windows-1252"
	Workers  int      `yaml:"workers"`  // 0 = GOMAXPROCS
}

// CacheConfig sizes the in-memory tokenization cache.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// OutputConfig controls how sentences are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // "text", "json"
	Color  bool   `yaml:"color"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text", "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.text"},
			Excludes: []string{"**/.git/**", "**/.rulesplit/**", "**/node_modules/**", "**/vendor/**"},
			Encoding: "utf-8",
		},
		Cache: CacheConfig{
			Size: 1024,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for rulesplit.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "rulesplit.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".rulesplit", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	for key, expansion := range c.Tokenizer.Abbreviations {
		if key == "" {
			return fmt.Errorf("%w: empty abbreviation key", ErrInvalidConfig)
		}
		if len(expansion) == 0 {
			return fmt.Errorf("%w: abbreviation %q has no expansion", ErrInvalidConfig, key)
		}
		for _, tok := range expansion {
			if strings.TrimSpace(tok) == "" || strings.ContainsAny(tok, " \t\n") {
				return fmt.Errorf("%w: abbreviation %q expands to invalid token %q", ErrInvalidConfig, key, tok)
			}
		}
	}
	for _, k := range c.Tokenizer.KeepDot {
		if k == "" {
			return fmt.Errorf("%w: empty keep_dot entry", ErrInvalidConfig)
		}
	}
	switch c.Output.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}
	return nil
}

// Rules builds the tokenizer rule tables this configuration describes.
func (c *Config) Rules() analyzer.Rules {
	base := analyzer.DefaultRules()
	if c.Tokenizer.ReplaceDefaults {
		base = analyzer.Rules{
			KeepDot:       map[string]struct{}{},
			Abbreviations: map[string][]string{},
		}
	}
	return base.With(c.Tokenizer.KeepDot, c.Tokenizer.Abbreviations)
}

// StoreDBPath returns the path to the corpus database.
func StoreDBPath(dir string) string {
	return filepath.Join(dir, ".rulesplit", "corpus.db")
}

// EnsureDataDir ensures the .rulesplit directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".rulesplit"), 0755)
}

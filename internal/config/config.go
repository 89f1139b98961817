package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.funnel/config.toml.
type Config struct {
	DefaultProfile string `toml:"default_profile"`
	ListenAddr     string `toml:"listen_addr"`

	// Sender identity used when filling cover letter templates.
	SenderName    string `toml:"sender_name"`
	SenderCompany string `toml:"sender_company"`

	// Default keyword phrase for job board searches.
	SearchKeywords string `toml:"search_keywords"`

	Research Research `toml:"research"`
}

// Research configures the company research backend. With an empty APIKey
// the daemon falls back to the built-in simulator.
type Research struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

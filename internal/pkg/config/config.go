// Package config provides configuration management for aim.
package config

import "io"

// Config is the persisted settings record.
type Config struct {
	APIKey           string `mapstructure:"api_key"`
	APIEndpoint      string `mapstructure:"api_endpoint"`
	Model            string `mapstructure:"model"`
	AutoCommit       bool   `mapstructure:"auto_commit"`
	MaxSubjectLength int    `mapstructure:"max_subject_length"`
	DiffNameOnly     bool   `mapstructure:"diff_name_only"`
}

// Compiled-in defaults.
const (
	DefaultAPIEndpoint      = "https://api.openai.com/v1"
	DefaultModel            = "gpt-4o-mini"
	DefaultAutoCommit       = false
	DefaultMaxSubjectLength = 50
	DefaultDiffNameOnly     = false
)

// Default returns a configuration holding the compiled-in defaults.
func Default() *Config {
	return &Config{
		APIKey:           "",
		APIEndpoint:      DefaultAPIEndpoint,
		Model:            DefaultModel,
		AutoCommit:       DefaultAutoCommit,
		MaxSubjectLength: DefaultMaxSubjectLength,
		DiffNameOnly:     DefaultDiffNameOnly,
	}
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	LoadFile() (*Config, error)
	Save(config *Config) error
	Set(key string, value string) error
	Reset() error
	Show(w io.Writer) error
	GetConfigPath() string
}

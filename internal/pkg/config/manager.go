package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "github.com/aimcli/aim/internal/pkg/errors"
)

const (
	// DefaultConfigDir is the directory under the user's home holding the config file.
	DefaultConfigDir = ".aim"
	// DefaultConfigFileName is the default config file name.
	DefaultConfigFileName = "config.yaml"
	// DefaultConfigFileExt is the config file format.
	DefaultConfigFileExt = "yaml"
)

var (
	// ErrUnknownKey is returned by Set for keys outside the recognized set.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrInvalidValue is returned by Set when a value cannot be parsed for its key.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// ViperManager implements Manager on top of a YAML file read through Viper.
type ViperManager struct {
	configPath string
}

var _ Manager = (*ViperManager)(nil)

// NewManager creates a new configuration manager.
// If configPath is empty, it uses ~/.aim/config.yaml.
func NewManager(configPath string) (*ViperManager, error) {
	if configPath == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = path
	}

	return &ViperManager{configPath: configPath}, nil
}

// DefaultConfigPath returns the user-scoped configuration file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFileName), nil
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// newViper builds a Viper instance seeded with defaults. Environment
// variables are bound only when withEnv is set.
func (m *ViperManager) newViper(withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetConfigType(DefaultConfigFileExt)
	v.SetConfigFile(m.configPath)

	setDefaults(v)

	if withEnv {
		bindEnvVars(v)
	}

	return v
}

// bindEnvVars explicitly binds one environment variable per setting.
func bindEnvVars(v *viper.Viper) {
	for _, s := range settings {
		_ = v.BindEnv(s.fileKey, s.envVar)
	}
}

// setDefaults seeds the compiled-in defaults.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("api_endpoint", d.APIEndpoint)
	v.SetDefault("model", d.Model)
	v.SetDefault("auto_commit", d.AutoCommit)
	v.SetDefault("max_subject_length", d.MaxSubjectLength)
	v.SetDefault("diff_name_only", d.DiffNameOnly)
}

// Load loads the configuration.
// Priority: env > file > defaults. A missing file yields defaults.
func (m *ViperManager) Load() (*Config, error) {
	return m.load(true)
}

// LoadFile loads the file over the defaults, ignoring AIM_ environment
// variables. Use it when the result will be saved back.
func (m *ViperManager) LoadFile() (*Config, error) {
	return m.load(false)
}

func (m *ViperManager) load(withEnv bool) (*Config, error) {
	v := m.newViper(withEnv)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.MaxSubjectLength <= 0 {
		apperrors.Warn("max_subject_length must be positive, got %d; using %d",
			cfg.MaxSubjectLength, DefaultMaxSubjectLength)
		cfg.MaxSubjectLength = DefaultMaxSubjectLength
	}

	return &cfg, nil
}

// Save overwrites the configuration file with cfg.
// The file is written with permissions 0600 since it holds the API key.
func (m *ViperManager) Save(cfg *Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	w := viper.New()
	w.SetConfigType(DefaultConfigFileExt)
	w.Set("api_key", cfg.APIKey)
	w.Set("api_endpoint", cfg.APIEndpoint)
	w.Set("model", cfg.Model)
	w.Set("auto_commit", cfg.AutoCommit)
	w.Set("max_subject_length", cfg.MaxSubjectLength)
	w.Set("diff_name_only", cfg.DiffNameOnly)

	// YAML whatever the extension; Load reads it back as YAML.
	f, err := os.OpenFile(m.configPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	if err := w.WriteConfigTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// Set updates a single setting by its user-facing key and persists the result.
// Nothing is written when the key is unknown or the value does not parse.
func (m *ViperManager) Set(key string, value string) error {
	s, ok := settings[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	// Environment overrides must not leak into the file.
	cfg, err := m.LoadFile()
	if err != nil {
		return err
	}

	if err := s.apply(cfg, value); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, err)
	}

	return m.Save(cfg)
}

// Reset overwrites the configuration file with the compiled-in defaults.
func (m *ViperManager) Reset() error {
	return m.Save(Default())
}

// Package config resolves where the plugin utilities keep their data and
// how they behave, from the environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// Namespace shared by every plugin under the XDG directories
	pluginsDirName = "claude-plugins"

	observationsPluginName = "self-documentation"
	observationsFileName   = "observations.json"

	configFileName = "forge-meta.yaml"

	// DefaultTranscriptOutput is used when export-session gets no output path
	DefaultTranscriptOutput = "session-transcript.txt"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	Home       string `env:"HOME"`
	DataHome   string `env:"XDG_DATA_HOME"`
	ConfigHome string `env:"XDG_CONFIG_HOME"`

	// ObservationsFile overrides the full path of the observation store
	ObservationsFile string `env:"FORGE_META_OBSERVATIONS_FILE"`

	Debug  bool   `env:"FORGE_META_DEBUG"`
	LogDir string `env:"FORGE_META_LOG_DIR"`

	// File holds settings read from the YAML config file, if any
	File FileConfig `env:"-"`
}

// FileConfig mirrors the optional YAML config file.
type FileConfig struct {
	Observations struct {
		File string `yaml:"file"`
	} `yaml:"observations"`
	Transcript struct {
		DefaultOutput string `yaml:"default_output"`
	} `yaml:"transcript"`
}

// Load reads configuration from the process environment and the config file.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFromEnvironment is like Load but reads variables from environ instead
// of the process environment.
func LoadFromEnvironment(environ map[string]string) (*Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		cfg.Home = home
	}

	fc, err := readFileConfig(cfg.ConfigFilePath())
	if err != nil {
		return nil, err
	}
	cfg.File = fc

	return &cfg, nil
}

func readFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

// DataHomeDir returns $XDG_DATA_HOME, defaulting to ~/.local/share.
func (c *Config) DataHomeDir() string {
	if c.DataHome != "" {
		return c.DataHome
	}
	return filepath.Join(c.Home, ".local", "share")
}

// ConfigHomeDir returns $XDG_CONFIG_HOME, defaulting to ~/.config.
func (c *Config) ConfigHomeDir() string {
	if c.ConfigHome != "" {
		return c.ConfigHome
	}
	return filepath.Join(c.Home, ".config")
}

// ConfigFilePath is the location of the optional YAML config file.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.ConfigHomeDir(), pluginsDirName, configFileName)
}

// ObservationsPath returns the observation store file. The environment
// override wins over the config file, which wins over the XDG default.
func (c *Config) ObservationsPath() string {
	switch {
	case c.ObservationsFile != "":
		return c.ObservationsFile
	case c.File.Observations.File != "":
		return c.File.Observations.File
	default:
		return filepath.Join(c.DataHomeDir(), pluginsDirName, observationsPluginName, observationsFileName)
	}
}

// TranscriptOutput returns the default export-session output path.
func (c *Config) TranscriptOutput() string {
	if c.File.Transcript.DefaultOutput != "" {
		return c.File.Transcript.DefaultOutput
	}
	return DefaultTranscriptOutput
}

// LogDirectory returns where debug logs are written.
func (c *Config) LogDirectory() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return filepath.Join(c.DataHomeDir(), pluginsDirName, "logs")
}

// Package config loads the optional .parsekit.yaml file that drives the
// command-line tool. The parser packages themselves take no configuration;
// everything here is about how the tool frames input and writes output.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/parsekit/internal/errors"
)

// Input format names accepted by the CLI and the config file.
const (
	FormatJSON  = "json"
	FormatNginx = "nginx"
)

// Error policy names for nginx batch parsing.
const (
	OnErrorFail = "fail"
	OnErrorSkip = "skip"
)

// Config represents the complete configuration for the parsekit tool
type Config struct {
	Format string       `yaml:"format"`
	Output OutputConfig `yaml:"output"`
	Nginx  NginxConfig  `yaml:"nginx"`
	Dev    DevConfig    `yaml:"dev"`
}

// OutputConfig controls how parsed values are printed
type OutputConfig struct {
	// Pretty selects the indented value dump; otherwise one record or
	// value per line in Go syntax.
	Pretty bool   `yaml:"pretty"`
	Indent string `yaml:"indent"`
}

// NginxConfig controls batch parsing of log files
type NginxConfig struct {
	// OnError is "fail" to abort the batch on the first bad line, or
	// "skip" to drop bad lines and report a count.
	OnError string `yaml:"on_error"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatJSON,
		Output: OutputConfig{
			Pretty: true,
			Indent: "  ",
		},
		Nginx: NginxConfig{
			OnError: OnErrorFail,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that enum-valued options hold known names
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatNginx:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown format %q (want %q or %q)", c.Format, FormatJSON, FormatNginx), nil)
	}
	switch c.Nginx.OnError {
	case OnErrorFail, OnErrorSkip:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown on_error policy %q (want %q or %q)", c.Nginx.OnError, OnErrorFail, OnErrorSkip), nil)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".parsekit.yml", ".parsekit.yaml", "parsekit.yml", "parsekit.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

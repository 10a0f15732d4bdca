package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonview/internal/errors"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatTerm = "term"
)

// Config represents the complete configuration for jsonview
type Config struct {
	Format string       `yaml:"format"`
	Title  string       `yaml:"title"`
	Server ServerConfig `yaml:"server"`
	Dev    DevConfig    `yaml:"dev"`
}

// ServerConfig controls the HTTP host
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatHTML,
		Server: ServerConfig{
			Listen: "localhost:8097",
		},
	}
}

// Validate checks the config for values no component can act on.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatHTML, FormatTerm:
		return nil
	default:
		return errors.NewInputError(
			fmt.Sprintf("unsupported format '%s'", c.Format),
			errors.ErrUnknownFormat,
		)
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonview.yml", ".jsonview.yaml", "jsonview.yml", "jsonview.yaml"}

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

// LoadConfigWithCLI loads config with CLI argument precedence. Empty CLI
// values leave the file or default value in place.
func LoadConfigWithCLI(configPath, cliFormat, cliTitle, cliListen string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliFormat != "" {
		cfg.Format = cliFormat
	}
	if cliTitle != "" {
		cfg.Title = cliTitle
	}
	if cliListen != "" {
		cfg.Server.Listen = cliListen
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

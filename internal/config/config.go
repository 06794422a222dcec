// Package config holds the CLI settings. Values are layered: defaults, then an
// optional YAML file, then FORMBUILDER_* environment variables. Command-line
// flags are applied last by the CLI itself.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvStoreDir     = "FORMBUILDER_STORE_DIR"
	EnvDefaultTitle = "FORMBUILDER_DEFAULT_TITLE"
	EnvOutputFormat = "FORMBUILDER_OUTPUT_FORMAT"
	EnvStrict       = "FORMBUILDER_STRICT"
)

// Output formats accepted in OutputFormat.
const (
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	OutputPretty = "pretty"
)

// Config is the CLI configuration.
type Config struct {
	// StoreDir is the directory holding one JSON document per form.
	StoreDir string `yaml:"store_dir"`
	// DefaultTitle is used by "new" when no title is given.
	DefaultTitle string `yaml:"default_title"`
	// OutputFormat selects how documents and answers are printed.
	OutputFormat string `yaml:"output_format"`
	// Strict makes edits addressed at unknown field or option ids fail.
	Strict bool `yaml:"strict"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StoreDir:     ".formbuilder",
		DefaultTitle: "Untitled form",
		OutputFormat: OutputJSON,
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStoreDir); ok && strings.TrimSpace(v) != "" {
		c.StoreDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDefaultTitle); ok && strings.TrimSpace(v) != "" {
		c.DefaultTitle = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvOutputFormat); ok && strings.TrimSpace(v) != "" {
		c.OutputFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvStrict); ok && strings.TrimSpace(v) != "" {
		strict, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvStrict, err)
		}
		c.Strict = strict
	}
	return nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StoreDir) == "" {
		return errors.New("config: store_dir is required")
	}
	switch c.OutputFormat {
	case OutputJSON, OutputYAML, OutputPretty:
		return nil
	default:
		return fmt.Errorf("config: unknown output_format %q", c.OutputFormat)
	}
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

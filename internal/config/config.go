// Package config provides loading and validation of the optional
// .cargo2junit.yaml configuration file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/cargo2junit/internal/errors"
	"github.com/AndreyAkinshin/cargo2junit/internal/schema"
)

// Config holds settings for the command-line shell. None of them affect
// how output is parsed or how the report is laid out.
type Config struct {
	Input             string `yaml:"input,omitempty"`
	Output            string `yaml:"output,omitempty"`
	Summary           bool   `yaml:"summary,omitempty"`
	FailOnTestFailure bool   `yaml:"fail_on_test_failure,omitempty"`
	Quiet             bool   `yaml:"quiet,omitempty"`
	Verbose           bool   `yaml:"verbose,omitempty"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Configf("failed to read config file %s: %v", path, err)
	}
	return LoadBytes(path, data)
}

// LoadBytes parses YAML configuration data, validates it against the
// embedded schema and returns warnings for keys it does not know.
// path is used in error messages only.
func LoadBytes(path string, data []byte) (*Config, []string, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Validation(path, err)
	}
	if raw == nil {
		// Empty document
		return Default(), nil, nil
	}

	if err := schema.ValidateValue(raw); err != nil {
		return nil, nil, errors.Validation(path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, errors.Validation(path, err)
	}

	warnings := detectUnknownFields(raw)
	applyDefaults(&cfg)
	return &cfg, warnings, nil
}

// Locate returns the configuration file to use. An explicit path wins,
// then the environment variable, then DefaultFileName in the working
// directory if it exists. required reports whether the file must exist.
func Locate(explicit string) (path string, required bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, true
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, false
	}
	return "", false
}

// LoadDefault locates and loads the configuration. When no file is found
// the defaults are returned with an empty path.
func LoadDefault(explicit string) (*Config, string, []string, error) {
	path, _ := Locate(explicit)
	if path == "" {
		return Default(), "", nil, nil
	}
	cfg, warnings, err := Load(path)
	if err != nil {
		return nil, path, nil, err
	}
	return cfg, path, warnings, nil
}

package config

// Default configuration values.
const (
	DefaultFileName = ".cargo2junit.yaml"
	EnvVar          = "CARGO2JUNIT_CONFIG"
	Stdio           = "-"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Input == "" {
		cfg.Input = Stdio
	}
	if cfg.Output == "" {
		cfg.Output = Stdio
	}
}

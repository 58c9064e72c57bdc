package stixpat

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents the stixpat configuration.
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
}

// ValidationConfig controls semantic validation behaviour.
type ValidationConfig struct {
	// StrictTimestamps enables calendar validity checks on qualifier
	// timestamps beyond the lexical digit-shape check. Enabled by default;
	// a pointer distinguishes "unset" from an explicit false.
	StrictTimestamps *bool `yaml:"strict_timestamps"`
}

// StrictTimestampsEnabled returns true unless strict_timestamps: false is set.
func (v *ValidationConfig) StrictTimestampsEnabled() bool {
	return v.StrictTimestamps == nil || *v.StrictTimestamps
}

// OutputConfig holds CLI output defaults.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json, yaml
}

// LoadConfig loads configuration from the given path. A missing file yields
// the default configuration rather than an error.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := getDefaultConfig()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode so unknown fields surface as errors
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}

	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "text"},
	}
}

func validateConfig(config *Config) error {
	switch config.Output.Format {
	case "", "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, json, or yaml)", config.Output.Format)
	}
}

func applyDefaults(config *Config) {
	if config.Output.Format == "" {
		config.Output.Format = "text"
	}
}

// loadEnvFiles loads a .env file from the current directory if present.
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

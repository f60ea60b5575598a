package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ShiftTemplate defines a recurring shift pattern expanded into concrete
// shifts over the tenant's draft window
type ShiftTemplate struct {
	RRule            string `yaml:"rrule" validate:"required"`
	Spot             string `yaml:"spot" validate:"required"`
	StartTime        string `yaml:"startTime" validate:"required,datetime=15:04"`
	DurationMinutes  int    `yaml:"durationMinutes" validate:"required,min=1"`
	RotationEmployee string `yaml:"rotationEmployee,omitempty"`
}

// SolverConfig tunes the local search loop
type SolverConfig struct {
	MaxIterations int   `yaml:"maxIterations" validate:"required,min=1"`
	MaxUnimproved int   `yaml:"maxUnimproved" validate:"required,min=1"`
	Seed          int64 `yaml:"seed,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL    string          `yaml:"databaseURL" validate:"required"`
	Solver         SolverConfig    `yaml:"solver" validate:"required"`
	ShiftTemplates []ShiftTemplate `yaml:"shiftTemplates,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rosterd_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each shift template
	for i, template := range cfg.ShiftTemplates {
		if _, err := rrule.StrToRRule(template.RRule); err != nil {
			return fmt.Errorf("invalid rrule in shiftTemplates[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for rosterd_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "rosterd_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

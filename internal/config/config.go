package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"notasmart/internal/ledger"

	"gopkg.in/yaml.v3"
)

// Config holds all NotaSmart configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Grading defaults applied to every new ledger
	Grading GradingConfig `yaml:"grading"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GradingConfig selects the scale and target a session starts with.
type GradingConfig struct {
	DefaultScale string   `yaml:"default_scale"`
	Target       *float64 `yaml:"target,omitempty"` // nil = the scale's passing grade
}

// UIConfig configures the interactive calculator.
type UIConfig struct {
	Theme    string `yaml:"theme"`     // auto, light, dark
	WordWrap int    `yaml:"word_wrap"` // width for rendered reports
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "notasmart",
		Version: "0.1.0",

		Grading: GradingConfig{
			DefaultScale: ledger.DefaultScale.Name,
		},

		UI: UIConfig{
			Theme:    "auto",
			WordWrap: 80,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns ~/.config/notasmart/config.yaml, or a relative
// fallback when the user config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".notasmart", "config.yaml")
	}
	return filepath.Join(dir, "notasmart", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if scale := os.Getenv("NOTASMART_SCALE"); scale != "" {
		c.Grading.DefaultScale = scale
	}
	if theme := os.Getenv("NOTASMART_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if level := os.Getenv("NOTASMART_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
		c.Logging.DebugMode = true
	}
	if file := os.Getenv("NOTASMART_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}

// Scale resolves the configured default scale.
func (c *Config) Scale() (ledger.Scale, error) {
	s, ok := ledger.LookupScale(c.Grading.DefaultScale)
	if !ok {
		names := make([]string, 0, 3)
		for _, sc := range ledger.SupportedScales() {
			names = append(names, sc.Name)
		}
		return ledger.Scale{}, fmt.Errorf("invalid default scale: %q (valid: %v)", c.Grading.DefaultScale, names)
	}
	return s, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	s, err := c.Scale()
	if err != nil {
		return err
	}
	if t := c.Grading.Target; t != nil && !s.Contains(*t) {
		return fmt.Errorf("invalid target %g: must be between %g and %g on scale %s", *t, s.Min, s.Max, s.Name)
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.UI.WordWrap < 0 {
		return fmt.Errorf("invalid word_wrap: %d", c.UI.WordWrap)
	}

	return c.Logging.Validate()
}

// NewLedger creates a ledger on the configured scale and target.
func (c *Config) NewLedger(opts ...ledger.Option) (*ledger.Ledger, error) {
	s, err := c.Scale()
	if err != nil {
		return nil, err
	}
	l := ledger.New(append([]ledger.Option{ledger.WithScale(s)}, opts...)...)
	if c.Grading.Target != nil {
		if err := l.SetTarget(*c.Grading.Target); err != nil {
			return nil, fmt.Errorf("invalid target: %w", err)
		}
	}
	return l, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/json2table/internal/naming"
	"github.com/mcncl/json2table/internal/renderer"
)

// Default table markup, matching the bootstrap-styled example the tool has
// always shipped with.
const (
	DefaultTableClass      = "table table-striped table-hover table-condensed table-bordered"
	DefaultTableStyle      = "border: 1px solid black; max-width: 600px;"
	DefaultTableAttributes = "border=1"
)

// Config represents the complete configuration for json2table
type Config struct {
	Table  TableConfig  `yaml:"table"`
	Naming NamingConfig `yaml:"naming"`
	Render RenderConfig `yaml:"render"`
	Dev    DevConfig    `yaml:"dev"`
}

// TableConfig controls the attributes written on every <table> tag
type TableConfig struct {
	Class      string `yaml:"class"`
	Style      string `yaml:"style"`
	Attributes string `yaml:"attributes"`
}

// NamingConfig controls how object keys become header labels
type NamingConfig struct {
	KeyStyle string            `yaml:"key_style"`
	Labels   map[string]string `yaml:"labels"`
	Rules    []KeyRule         `yaml:"rules"`
}

// KeyRule applies a key style to every key matching a pattern
type KeyRule struct {
	Pattern string `yaml:"pattern"`
	Style   string `yaml:"style"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// RenderConfig controls rendering limits and output layout
type RenderConfig struct {
	MaxDepth int  `yaml:"max_depth"`
	Pretty   bool `yaml:"pretty"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Table: TableConfig{
			Class:      DefaultTableClass,
			Style:      DefaultTableStyle,
			Attributes: DefaultTableAttributes,
		},
		Naming: NamingConfig{
			KeyStyle: string(naming.StyleHuman),
			Labels:   make(map[string]string),
			Rules:    []KeyRule{},
		},
		Render: RenderConfig{
			MaxDepth: renderer.DefaultMaxDepth,
			Pretty:   false,
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
	configNames := []string{".json2table.yml", ".json2table.yaml", "json2table.yml", "json2table.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

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

// Validate checks key styles and compiles rule patterns
func (c *Config) Validate() error {
	if _, err := naming.ParseStyle(c.Naming.KeyStyle); err != nil {
		return fmt.Errorf("invalid naming.key_style: %w", err)
	}

	for i := range c.Naming.Rules {
		rule := &c.Naming.Rules[i]
		if _, err := naming.ParseStyle(rule.Style); err != nil {
			return fmt.Errorf("invalid style for key rule '%s': %w", rule.Pattern, err)
		}
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid key rule pattern '%s': %w", rule.Pattern, err)
		}
		rule.regex = regex
	}

	if c.Render.MaxDepth < 0 {
		return fmt.Errorf("render.max_depth must not be negative, got %d", c.Render.MaxDepth)
	}

	return nil
}

// KeyFormatter builds the label formatter described by the naming section.
// Invalid styles fall back to humanized labels; call Validate first to
// reject them instead.
func (c *Config) KeyFormatter() naming.Formatter {
	style, err := naming.ParseStyle(c.Naming.KeyStyle)
	if err != nil {
		style = naming.StyleHuman
	}

	rules := make([]naming.Rule, 0, len(c.Naming.Rules))
	for i := range c.Naming.Rules {
		rule := &c.Naming.Rules[i]
		if !rule.compile() {
			continue
		}
		ruleStyle, err := naming.ParseStyle(rule.Style)
		if err != nil {
			continue
		}
		rules = append(rules, naming.Rule{Pattern: rule.regex, Style: ruleStyle})
	}

	return naming.Formatter{
		Style:  style,
		Labels: c.Naming.Labels,
		Rules:  rules,
	}
}

// compile compiles the pattern on first use when Validate was skipped.
func (kr *KeyRule) compile() bool {
	if kr.regex != nil {
		return true
	}
	regex, err := regexp.Compile(kr.Pattern)
	if err != nil {
		return false
	}
	kr.regex = regex
	return true
}

// RenderOptions converts the config into renderer options
func (c *Config) RenderOptions() renderer.Options {
	return renderer.Options{
		TableClass:      c.Table.Class,
		TableStyle:      c.Table.Style,
		TableAttributes: c.Table.Attributes,
		MaxDepth:        c.Render.MaxDepth,
		Keys:            c.KeyFormatter(),
	}
}

// Overrides holds values given on the command line. Zero values mean the
// flag was not set and the config file (or default) value is kept.
type Overrides struct {
	TableClass      string
	TableStyle      string
	TableAttributes string
	KeyStyle        string
	MaxDepth        int
	Pretty          bool
	Debug           bool
}

// Apply copies every set override onto c
func (o Overrides) Apply(c *Config) {
	if o.TableClass != "" {
		c.Table.Class = o.TableClass
	}
	if o.TableStyle != "" {
		c.Table.Style = o.TableStyle
	}
	if o.TableAttributes != "" {
		c.Table.Attributes = o.TableAttributes
	}
	if o.KeyStyle != "" {
		c.Naming.KeyStyle = o.KeyStyle
	}
	if o.MaxDepth > 0 {
		c.Render.MaxDepth = o.MaxDepth
	}
	// Boolean flags can only switch features on.
	if o.Pretty {
		c.Render.Pretty = true
	}
	if o.Debug {
		c.Dev.Debug = true
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI flags > config file > defaults
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	overrides.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

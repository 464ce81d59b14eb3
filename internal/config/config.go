package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	hinterrors "xqhint/internal/errors"
	"xqhint/internal/paths"
)

// CurrentVersion is the only config schema version this build understands
const CurrentVersion = 1

// Display styles for the decorated hint list
const (
	DisplayHTML     = "html"
	DisplayTerminal = "terminal"
)

// Config represents the complete xqhint configuration
type Config struct {
	Version    int      `json:"version" yaml:"version" mapstructure:"version"`
	LanguageID string   `json:"languageId" yaml:"languageId" mapstructure:"languageId"`
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
	Priority   int      `json:"priority" yaml:"priority" mapstructure:"priority"`

	Corpus  CorpusConfig  `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Display DisplayConfig `json:"display" yaml:"display" mapstructure:"display"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// CorpusConfig controls how project files are gathered for identifier harvesting
type CorpusConfig struct {
	MaxConcurrentReads int      `json:"maxConcurrentReads" yaml:"maxConcurrentReads" mapstructure:"maxConcurrentReads"`
	MaxFileSizeBytes   int64    `json:"maxFileSizeBytes" yaml:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	IgnoreDirs         []string `json:"ignoreDirs" yaml:"ignoreDirs" mapstructure:"ignoreDirs"`
	CacheEntries       int      `json:"cacheEntries" yaml:"cacheEntries" mapstructure:"cacheEntries"`
}

// DisplayConfig controls how display entries are decorated
type DisplayConfig struct {
	Style string `json:"style" yaml:"style" mapstructure:"style"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentVersion,
		LanguageID: "xquery",
		Extensions: []string{"xqy"},
		Priority:   0,
		Corpus: CorpusConfig{
			MaxConcurrentReads: 8,
			MaxFileSizeBytes:   1000000,
			IgnoreDirs:         []string{".git", "node_modules", "vendor", paths.StateDirName},
			CacheEntries:       256,
		},
		Display: DisplayConfig{
			Style: DisplayHTML,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from <projectRoot>/.xqhint/config.json.
// Missing files yield the defaults; XQHINT_* environment variables override
// both (e.g. XQHINT_LOGGING_LEVEL=debug, XQHINT_EXTENSIONS=xqy,xq).
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(paths.StateDir(projectRoot))

	v.SetEnvPrefix("XQHINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("languageId", d.LanguageID)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("priority", d.Priority)
	v.SetDefault("corpus.maxConcurrentReads", d.Corpus.MaxConcurrentReads)
	v.SetDefault("corpus.maxFileSizeBytes", d.Corpus.MaxFileSizeBytes)
	v.SetDefault("corpus.ignoreDirs", d.Corpus.IgnoreDirs)
	v.SetDefault("corpus.cacheEntries", d.Corpus.CacheEntries)
	v.SetDefault("display.style", d.Display.Style)
	v.SetDefault("logging.level", d.Logging.Level)
}

// normalize strips leading dots and lowercases extensions so ".XQY" and "xqy" agree
func (c *Config) normalize() {
	for i, ext := range c.Extensions {
		c.Extensions[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}
	c.Display.Style = strings.ToLower(c.Display.Style)
}

// Save writes the configuration to <projectRoot>/.xqhint/config.json
func (c *Config) Save(projectRoot string) error {
	configPath := paths.ConfigPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.LanguageID == "" {
		return &ConfigError{Field: "languageId", Message: "must not be empty"}
	}
	if len(c.Extensions) == 0 {
		return &ConfigError{Field: "extensions", Message: "at least one extension is required"}
	}
	for _, ext := range c.Extensions {
		if ext == "" {
			return &ConfigError{Field: "extensions", Message: "extensions must not be blank"}
		}
	}
	if c.Corpus.MaxConcurrentReads < 0 {
		return &ConfigError{Field: "corpus.maxConcurrentReads", Message: "must not be negative"}
	}
	if c.Corpus.CacheEntries < 0 {
		return &ConfigError{Field: "corpus.cacheEntries", Message: "must not be negative"}
	}
	switch c.Display.Style {
	case DisplayHTML, DisplayTerminal:
	default:
		return &ConfigError{Field: "display.style", Message: "must be html or terminal"}
	}
	return nil
}

// ConfigError represents a configuration error. It unwraps to a
// CONFIG_INVALID HintError.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return hinterrors.New(hinterrors.ConfigInvalid, e.Field+": "+e.Message, nil)
}

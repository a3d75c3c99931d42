package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
	"wordfreq/internal/domain"
)

// Config holds all configuration for a wordfreq run.
type Config struct {
	Count   CountConfig   `yaml:"count"`
	Filter  FilterConfig  `yaml:"filter"`
	Segment SegmentConfig `yaml:"segment"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Archive ArchiveConfig `yaml:"archive"`
	Logging LoggingConfig `yaml:"logging"`
}

// CountConfig holds ranking configuration.
type CountConfig struct {
	TopK int    `yaml:"top_k"`
	Lang string `yaml:"lang"` // "en"/"latin" or "zh"/"segmented"
}

// FilterConfig holds token filtering configuration.
type FilterConfig struct {
	Stopwords       string   `yaml:"stopwords"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	MinLength       int      `yaml:"min_length"` // 0 = disabled
}

// SegmentConfig holds configuration for segmented tokenization.
type SegmentConfig struct {
	Dict string `yaml:"dict"`
}

// InputConfig holds loader configuration.
type InputConfig struct {
	HTML     bool `yaml:"html"`
	Progress bool `yaml:"progress"`
}

// OutputConfig holds report configuration.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "text" or "json"
}

// ArchiveConfig holds the run archive configuration.
type ArchiveConfig struct {
	Path string `yaml:"path"` // empty = archiving disabled
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

const (
	// DefaultStopwordsFile is read when present and silently skipped otherwise.
	DefaultStopwordsFile = "stopwords.txt"
	// FileName is the config file looked up by LoadFromDir.
	FileName = "wordfreq.yaml"

	FormatText = "text"
	FormatJSON = "json"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Count: CountConfig{
			TopK: 10,
			Lang: "en",
		},
		Filter: FilterConfig{
			Stopwords: DefaultStopwordsFile,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for wordfreq.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".wordfreq", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the pipeline has no defined behavior for.
func (c *Config) Validate() error {
	if c.Count.TopK < 0 {
		return fmt.Errorf("%w: top-k must be >= 0, got %d", domain.ErrInvalidArgument, c.Count.TopK)
	}
	if _, err := domain.ParseMode(c.Count.Lang); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidArgument, c.Output.Format)
	}
	if c.Filter.MinLength < 0 {
		return fmt.Errorf("%w: min-length must be >= 0, got %d", domain.ErrInvalidArgument, c.Filter.MinLength)
	}
	for _, p := range c.Filter.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: invalid exclude pattern %q", domain.ErrInvalidArgument, p)
		}
	}
	return nil
}

// Mode returns the validated tokenization mode.
func (c *Config) Mode() domain.Mode {
	m, _ := domain.ParseMode(c.Count.Lang)
	return m
}

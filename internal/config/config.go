package config

import (
	"fmt"
	"time"
)

// Config holds all settings. Defaults come from DefaultConfig; keys present
// in the dotfile override them, including explicit zero values. Missing
// keys keep their defaults.
type Config struct {
	// External tool
	AgPath         string   `yaml:"ag_path"`         // Default: "ag"
	DefaultOptions []string `yaml:"default_options"` // Default: --nocolor --nogroup --column
	IgnorePatterns []string `yaml:"ignore_patterns"` // passed as --ignore <pattern> pairs

	// Results
	MaxResults       int  `yaml:"max_results"`       // Default: 10000
	RespectGitignore bool `yaml:"respect_gitignore"` // Default: true

	// Interactive search
	DebounceMs     int `yaml:"debounce_ms"`      // Default: 300
	MinQueryLength int `yaml:"min_query_length"` // Default: 2

	// Presentation
	PreviewContext int    `yaml:"preview_context"` // lines around the match, Default: 200
	Editor         string `yaml:"editor"`          // Default: $EDITOR, then vi

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AgPath:           "ag",
		DefaultOptions:   []string{"--nocolor", "--nogroup", "--column"},
		MaxResults:       10000,
		RespectGitignore: true,
		DebounceMs:       300,
		MinQueryLength:   2,
		PreviewContext:   200,
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.AgPath == "" {
		return fmt.Errorf("ag_path must not be empty")
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be at least 1, got %d", c.MaxResults)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.MinQueryLength < 1 {
		return fmt.Errorf("min_query_length must be at least 1, got %d", c.MinQueryLength)
	}
	if c.PreviewContext < 0 {
		return fmt.Errorf("preview_context must not be negative, got %d", c.PreviewContext)
	}
	return nil
}

// Debounce returns the debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2gb/internal/fileutil"
	"github.com/alnah/go-md2gb/internal/pipeline"
	"github.com/alnah/go-md2gb/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// appDir is the directory searched under the user config directory.
const appDir = "go-md2gb"

// Limits for user-supplied values.
const (
	MaxPathLength    = 4096 // Input directory
	MaxPhraseLength  = 500  // Preserve phrase regexp
	MaxPatternLength = 200  // Rule followedBy regexp
	MaxWordLength    = 64   // Rule from/to
	MaxRules         = 1000 // Rules plus extra rules
	MaxPhrases       = 200  // Preserve phrases plus extras
	MaxWorkers       = 64
)

// Config holds all configuration for a conversion run.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Conversion ConversionConfig `yaml:"conversion"`
	Workers    int              `yaml:"workers"` // 0 = derived from GOMAXPROCS
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Converted when no path is given (empty = must specify)
}

// ConversionConfig tunes the substitution engine.
// A nil list keeps the built-in value; a non-nil list replaces it.
type ConversionConfig struct {
	WindowSize           *int         `yaml:"windowSize"` // nil = 100
	PreservePhrases      []string     `yaml:"preservePhrases"`
	ExtraPreservePhrases []string     `yaml:"extraPreservePhrases"`
	Rules                []RuleConfig `yaml:"rules"`
	ExtraRules           []RuleConfig `yaml:"extraRules"`
	RefreshRegions       bool         `yaml:"refreshRegions"`
	Verify               bool         `yaml:"verify"`
}

// RuleConfig is one rewrite rule as written in YAML.
type RuleConfig struct {
	From       string `yaml:"from"`
	To         string `yaml:"to"`
	FollowedBy string `yaml:"followedBy,omitempty"`
}

// Validate checks value ranges, field lengths and that every rule and
// phrase compiles. Called automatically by LoadConfig, but available for
// callers that build or override a Config in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidConfig, MaxWorkers, c.Workers)
	}

	conv := c.Conversion
	if conv.WindowSize != nil && *conv.WindowSize < 0 {
		return fmt.Errorf("%w: conversion.windowSize: must be >= 0, got %d", ErrInvalidConfig, *conv.WindowSize)
	}

	if n := len(conv.PreservePhrases) + len(conv.ExtraPreservePhrases); n > MaxPhrases {
		return fmt.Errorf("%w: conversion: %d preserve phrases (max %d)", ErrInvalidConfig, n, MaxPhrases)
	}
	if err := validatePhrases("conversion.preservePhrases", conv.PreservePhrases); err != nil {
		return err
	}
	if err := validatePhrases("conversion.extraPreservePhrases", conv.ExtraPreservePhrases); err != nil {
		return err
	}

	if n := len(conv.Rules) + len(conv.ExtraRules); n > MaxRules {
		return fmt.Errorf("%w: conversion: %d rules (max %d)", ErrInvalidConfig, n, MaxRules)
	}
	if err := validateRules("conversion.rules", conv.Rules); err != nil {
		return err
	}
	if err := validateRules("conversion.extraRules", conv.ExtraRules); err != nil {
		return err
	}

	return nil
}

func validatePhrases(field string, phrases []string) error {
	for i, p := range phrases {
		name := fmt.Sprintf("%s[%d]", field, i)
		if err := validateFieldLength(name, p, MaxPhraseLength); err != nil {
			return err
		}
	}
	if _, err := pipeline.NewContextGuard(0, phrases); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
	}
	return nil
}

func validateRules(field string, rules []RuleConfig) error {
	for i, r := range rules {
		name := fmt.Sprintf("%s[%d]", field, i)
		if err := validateFieldLength(name+".from", r.From, MaxWordLength); err != nil {
			return err
		}
		if err := validateFieldLength(name+".to", r.To, MaxWordLength); err != nil {
			return err
		}
		if err := validateFieldLength(name+".followedBy", r.FollowedBy, MaxPatternLength); err != nil {
			return err
		}
		if _, err := pipeline.CompileRule(r.From, r.To, r.FollowedBy); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in configuration: default rule table and
// preserve list, scan-once regions, no verification, automatic workers.
func DefaultConfig() *Config {
	return &Config{
		Input:      InputConfig{DefaultDir: ""},
		Conversion: ConversionConfig{},
		Workers:    0,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// NAME.yaml and NAME.yml in the current directory, then in the go-md2gb
// directory under the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

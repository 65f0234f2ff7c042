// Package config loads and validates the docx2tex configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docx2tex/internal/fileutil"
	"github.com/alnah/go-docx2tex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// DefaultConfigName is the bare config name searched for when no --config
// flag is given ("docx2tex" → docx2tex.yaml / docx2tex.yml).
const DefaultConfigName = "docx2tex"

// Correction service defaults matching the Cohere chat API.
const (
	DefaultBaseURL        = "https://api.cohere.com/v2/chat"
	DefaultModel          = "command-a-03-2025"
	DefaultAPIKeyEnv      = "COHERE_API_KEY"
	DefaultBatchSize      = 100
	DefaultSeparator      = "#SEP#"
	DefaultTimeoutSeconds = 60
)

// DefaultMaxRetries bounds the missing-package recompile loop.
const DefaultMaxRetries = 3

// DefaultLogoPath is where the closing logo is looked up, relative to the
// LaTeX output directory.
const DefaultLogoPath = "../logo.png"

// Config holds all configuration for document conversion.
type Config struct {
	// OutputDir is the output root. Empty means probe standard candidates
	// and fall back to the system temp directory.
	OutputDir string `yaml:"outputDir"`
	// ResourcesDir overrides individual resource files (escape table,
	// abbreviations, whitelist, prompt). Empty means embedded defaults.
	ResourcesDir string           `yaml:"resourcesDir"`
	Correction   CorrectionConfig `yaml:"correction"`
	Compile      CompileConfig    `yaml:"compile"`
	LaTeX        LaTeXConfig      `yaml:"latex"`
}

// CorrectionConfig defines the external spell-correction service.
type CorrectionConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"baseURL"`
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"apiKeyEnv"`      // env var holding the API key
	BatchSize      int    `yaml:"batchSize"`      // paragraphs per request
	Separator      string `yaml:"separator"`      // joins batch entries
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // per-request timeout
}

// CompileConfig defines PDF compilation behavior.
type CompileConfig struct {
	Enabled bool `yaml:"enabled"`
	// Engines are tried in order until one succeeds.
	Engines []string `yaml:"engines"`
	// MaxRetries bounds recompiles after adding missing packages.
	MaxRetries int `yaml:"maxRetries"`
}

// LaTeXConfig defines the generated document preamble.
type LaTeXConfig struct {
	// Packages are preamble lines emitted after \documentclass.
	Packages []string `yaml:"packages"`
	// Settings are preamble lines emitted after the packages.
	Settings []string `yaml:"settings"`
	// LogoPath is the closing logo image, relative to the LaTeX directory.
	LogoPath string `yaml:"logoPath"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Correction: CorrectionConfig{
			Enabled:        true,
			BaseURL:        DefaultBaseURL,
			Model:          DefaultModel,
			APIKeyEnv:      DefaultAPIKeyEnv,
			BatchSize:      DefaultBatchSize,
			Separator:      DefaultSeparator,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Compile: CompileConfig{
			Enabled:    true,
			Engines:    []string{"pdflatex", "lualatex"},
			MaxRetries: DefaultMaxRetries,
		},
		LaTeX: LaTeXConfig{
			Packages: DefaultPackages(),
			Settings: DefaultSettings(),
			LogoPath: DefaultLogoPath,
		},
	}
}

// DefaultPackages returns the preamble package lines for the house layout:
// A4 geometry, fancy headers, two-column attendee lists, figures, and the
// symbols French minutes need (euro, degree, guillemets).
func DefaultPackages() []string {
	return []string{
		`\usepackage[T1]{fontenc}`,
		`\usepackage[utf8]{inputenc}`,
		`\usepackage[margin=1.2in]{geometry}`,
		`\geometry{a4paper}`,
		`\usepackage{fancyhdr}`,
		`\usepackage{multicol}`,
		`\usepackage{graphicx}`,
		`\usepackage{float}`,
		`\usepackage{varwidth}`,
		`\usepackage{textcomp}`,
		`\usepackage{csquotes}`,
		`\usepackage[gen]{eurosym}`,
	}
}

// DefaultSettings returns the preamble settings emitted after the packages.
func DefaultSettings() []string {
	return []string{
		`\pagestyle{fancy}`,
		`\setlength{\headheight}{22.5pt}`,
		`\setlength{\parindent}{0pt}`,
		`\setlength{\parskip}{1em}`,
	}
}

// Validate checks semantic constraints. Called automatically by LoadConfig,
// but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if c.Correction.Enabled {
		if !fileutil.IsURL(c.Correction.BaseURL) {
			return fmt.Errorf("%w: correction.baseURL: %q is not an http(s) URL",
				ErrInvalidConfig, c.Correction.BaseURL)
		}
		if c.Correction.Model == "" {
			return fmt.Errorf("%w: correction.model: required when correction is enabled", ErrInvalidConfig)
		}
		if c.Correction.APIKeyEnv == "" {
			return fmt.Errorf("%w: correction.apiKeyEnv: required when correction is enabled", ErrInvalidConfig)
		}
		if c.Correction.BatchSize < 1 {
			return fmt.Errorf("%w: correction.batchSize: must be at least 1, got %d",
				ErrInvalidConfig, c.Correction.BatchSize)
		}
		if c.Correction.Separator == "" {
			return fmt.Errorf("%w: correction.separator: cannot be empty", ErrInvalidConfig)
		}
		if c.Correction.TimeoutSeconds < 1 {
			return fmt.Errorf("%w: correction.timeoutSeconds: must be at least 1, got %d",
				ErrInvalidConfig, c.Correction.TimeoutSeconds)
		}
	}

	if c.Compile.Enabled {
		if len(c.Compile.Engines) == 0 {
			return fmt.Errorf("%w: compile.engines: at least one engine required", ErrInvalidConfig)
		}
		for i, engine := range c.Compile.Engines {
			if strings.TrimSpace(engine) == "" {
				return fmt.Errorf("%w: compile.engines[%d]: cannot be empty", ErrInvalidConfig, i)
			}
			if strings.ContainsAny(engine, "/\\") {
				return fmt.Errorf("%w: compile.engines[%d]: %q must be a bare command name",
					ErrInvalidConfig, i, engine)
			}
		}
		if c.Compile.MaxRetries < 0 {
			return fmt.Errorf("%w: compile.maxRetries: cannot be negative, got %d",
				ErrInvalidConfig, c.Compile.MaxRetries)
		}
	}

	for i, line := range c.LaTeX.Packages {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("%w: latex.packages[%d]: cannot be empty", ErrInvalidConfig, i)
		}
	}
	for i, line := range c.LaTeX.Settings {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("%w: latex.settings[%d]: cannot be empty", ErrInvalidConfig, i)
		}
	}

	return nil
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

	if strings.ContainsAny(nameOrPath, "/\\") {
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

	// Start from defaults so a partial file only overrides what it names.
	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations resolveConfigPath would try for a bare
// config name, for use in error hints.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "docx2tex", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/docx2tex/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, path := range tried {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

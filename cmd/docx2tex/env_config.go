package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string // DOCX2TEX_CONFIG: config file name or path
	OutputDir    string // DOCX2TEX_OUTPUT_DIR: output root
	ResourcesDir string // DOCX2TEX_RESOURCES: resources directory
	Workers      int    // DOCX2TEX_WORKERS: parallel workers
	NoCorrection bool   // DOCX2TEX_NO_CORRECTION: skip the correction service
}

// knownEnvVars lists valid DOCX2TEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCX2TEX_CONFIG":        true,
	"DOCX2TEX_OUTPUT_DIR":    true,
	"DOCX2TEX_RESOURCES":     true,
	"DOCX2TEX_WORKERS":       true,
	"DOCX2TEX_NO_CORRECTION": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized DOCX2TEX_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:   getenv("DOCX2TEX_CONFIG"),
		OutputDir:    getenv("DOCX2TEX_OUTPUT_DIR"),
		ResourcesDir: getenv("DOCX2TEX_RESOURCES"),
	}

	if workers := getenv("DOCX2TEX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if raw := getenv("DOCX2TEX_NO_CORRECTION"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			cfg.NoCorrection = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DOCX2TEX_* variables.
// Helps catch typos like DOCX2TEX_OUPUT_DIR instead of DOCX2TEX_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DOCX2TEX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to flags.
// Only sets values the user did not pass explicitly, which keeps the
// precedence: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, flags *convertFlags) {
	if env.ConfigPath != "" && flags.common.config == "" {
		flags.common.config = env.ConfigPath
	}
	if env.OutputDir != "" && flags.output.dir == "" {
		flags.output.dir = env.OutputDir
	}
	if env.ResourcesDir != "" && flags.resources.dir == "" {
		flags.resources.dir = env.ResourcesDir
	}
	if env.Workers > 0 && flags.workers == 0 {
		flags.workers = env.Workers
	}
	if env.NoCorrection && !flags.correction.disabled {
		flags.correction.disabled = true
	}
}

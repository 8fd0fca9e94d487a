package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2gb/internal/config"
)

// envPrefix marks the environment variables read by md2gb.
const envPrefix = "MD2GB_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2GB_CONFIG: config file name or path
	InputDir   string // MD2GB_INPUT_DIR: default input directory
	Workers    int    // MD2GB_WORKERS: parallel workers
	WindowSize *int   // MD2GB_WINDOW_SIZE: context window (0 is valid)
}

// knownEnvVars lists valid MD2GB_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2GB_CONFIG":      true,
	"MD2GB_INPUT_DIR":   true,
	"MD2GB_WORKERS":     true,
	"MD2GB_WINDOW_SIZE": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable or out-of-range numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2GB_CONFIG"),
		InputDir:   os.Getenv("MD2GB_INPUT_DIR"),
	}

	if workers := os.Getenv("MD2GB_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if window := os.Getenv("MD2GB_WINDOW_SIZE"); window != "" {
		if n, err := strconv.Atoi(window); err == nil && n >= 0 {
			cfg.WindowSize = &n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2GB_* variables.
// Helps catch typos like MD2GB_WORKER instead of MD2GB_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on the loaded config.
// Set variables win over the file; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.WindowSize != nil {
		n := *env.WindowSize
		cfg.Conversion.WindowSize = &n
	}
}

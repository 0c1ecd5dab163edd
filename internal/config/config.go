package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/goccy/go-json"
)

// Config holds the settings shared by the CLI commands. A config file is
// optional; flags override it and anything still unset falls back to a
// default in Resolve.
type Config struct {
	// Paths
	DataDir   string `json:"data_dir"`
	OutputDir string `json:"output_dir"`

	// Conversion settings
	TargetVersion string `json:"target_version"`
	Workers       int    `json:"workers"`

	// Logging
	Verbose bool `json:"verbose"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir   string
	OutputDir string
	Version   string
	Workers   int
	Verbose   bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.DataDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Version != "" {
		c.TargetVersion = flags.Version
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Verbose {
		c.Verbose = true
	}

	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = c.DataDir
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

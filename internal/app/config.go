package app

import (
	"errors"

	"github.com/specialistvlad/yangjsonschema/internal/compiler"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // hcl files or directories

	OutputPath string // empty for stdout
	CheckPath  string // compare instead of writing
	Format     compiler.Format
	Color      bool // colorize check diffs

	Title        string
	NoNamespaces bool
	ConfigOnly   bool

	Debug     bool
	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one schema path is required")
	}
	if cfg.OutputPath != "" && cfg.CheckPath != "" {
		return nil, errors.New("output and check cannot be combined")
	}

	if cfg.Format == "" {
		cfg.Format = compiler.FormatJSON
	}
	if _, err := compiler.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return &cfg, nil
}

// CompilerOptions returns the options of the compilation run.
func (c *Config) CompilerOptions() compiler.Options {
	return compiler.Options{
		Title:        c.Title,
		NoNamespaces: c.NoNamespaces,
		ConfigOnly:   c.ConfigOnly,
	}
}

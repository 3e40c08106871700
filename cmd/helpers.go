package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nextgen-ti/kbportal/internal/config"
	"github.com/nextgen-ti/kbportal/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `kbportal init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger; --verbose forces debug level.
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(w, level)
}

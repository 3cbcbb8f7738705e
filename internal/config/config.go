// Package config loads editor settings from the environment, after an
// optional .env file in the working directory.
package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Editor  EditorConfig
	Logging LoggingConfig
}

type EditorConfig struct {
	// StartDir is where the file picker opens (default: working directory)
	StartDir string `env:"GRIDEDIT_START_DIR"`

	// ExportSuffix is appended to the input file name on export
	ExportSuffix string `env:"GRIDEDIT_EXPORT_SUFFIX" default:"_edited"`

	// HistoryLimit caps undo steps; -1 disables undo
	HistoryLimit int `env:"GRIDEDIT_HISTORY_LIMIT" default:"100"`

	// AllowedTypes are the extensions offered by the file picker
	AllowedTypes []string `env:"GRIDEDIT_ALLOWED_TYPES" default:".csv,.xlsx"`
}

type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `env:"GRIDEDIT_LOG_LEVEL" default:"info"`

	// Format is text or json
	Format string `env:"GRIDEDIT_LOG_FORMAT" default:"text"`

	// File receives log output. Empty discards logs since the terminal
	// belongs to the UI.
	File string `env:"GRIDEDIT_LOG_FILE"`
}

func (c *Config) Validate() error {
	var errs []string

	if c.Editor.HistoryLimit < -1 {
		errs = append(errs, fmt.Sprintf("GRIDEDIT_HISTORY_LIMIT must be -1 or greater, got %d", c.Editor.HistoryLimit))
	}
	if len(c.Editor.AllowedTypes) == 0 {
		errs = append(errs, "GRIDEDIT_ALLOWED_TYPES must list at least one extension")
	}
	for _, ext := range c.Editor.AllowedTypes {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("GRIDEDIT_ALLOWED_TYPES entry %q must start with a dot", ext))
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("GRIDEDIT_LOG_LEVEL must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("GRIDEDIT_LOG_FORMAT must be text or json, got %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Package config loads realtree settings from defaults, a config file,
// REALTREE_* environment variables and command-line flags.
package config

import "log/slog"

// Output formats for the print command.
const (
	OutputTable = "table"
	OutputPlain = "plain"
)

// Defaults.
const (
	DefaultPrompt   = "> "
	DefaultOutput   = OutputTable
	DefaultLogLevel = "warn"
	EnvPrefix       = "REALTREE_"
)

// Config holds all realtree settings.
type Config struct {
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
	Journal     string `koanf:"journal"` // SQLite path; empty keeps the journal in memory
	Output      string `koanf:"output"`
	Color       bool   `koanf:"color"`
	LogLevel    string `koanf:"log_level"`
	Banner      bool   `koanf:"banner"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Level returns the configured slog level. Validate reports bad values;
// an unparsable level falls back to warn.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}

package config

import (
	"fmt"
	"log/slog"
)

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputPlain:
	default:
		return fmt.Errorf("invalid output %q: must be %q or %q", c.Output, OutputTable, OutputPlain)
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	return nil
}

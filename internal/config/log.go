package config

import "github.com/rs/zerolog"

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error, disabled
	Level string

	// JSON writes raw JSON lines instead of the console format
	JSON bool
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: zerolog.LevelInfoValue}
}

// ZerologLevel parses Level.
func (l *LogConfig) ZerologLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(l.Level)
}

// Validate checks that the log level is known.
func (l *LogConfig) Validate() error {
	if _, err := l.ZerologLevel(); err != nil {
		return invalid("log level %q: %v", l.Level, err)
	}
	return nil
}

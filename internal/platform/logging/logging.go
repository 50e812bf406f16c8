package logging

import (
	"io"

	hclog "github.com/hashicorp/go-hclog"
)

const DefaultLevel = "warn"

// New builds the root logger. Unknown level names fall back to DefaultLevel.
func New(name, level string, w io.Writer) hclog.Logger {
	parsed := hclog.LevelFromString(level)
	if parsed == hclog.NoLevel {
		parsed = hclog.LevelFromString(DefaultLevel)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  parsed,
		Output: w,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrDiscard lets constructors accept a nil logger.
func OrDiscard(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

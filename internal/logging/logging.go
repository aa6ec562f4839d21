package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jask/palette/internal/config"
)

const EnvLogLevel = "PALETTE_LOG_LEVEL"

// New builds the application logger. With a Path it appends to that file,
// since the TUI owns the terminal; the returned closer releases it.
func New(cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if p := strings.TrimSpace(cfg.Path); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	level := cfg.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	logger := log.NewWithOptions(out, log.Options{
		Prefix:          "palette",
		ReportTimestamp: true,
		Level:           ParseLevel(level),
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(raw string) log.Level {
	level, err := log.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

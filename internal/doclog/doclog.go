// Package doclog provides the structured logger used by cmd/docdiff.
// Nothing under pkg/ imports this
// package directly: the canonicalizer, Merkle tree, and diff engine never
// log, they only return errors (see internal/docerr).
package doclog

import (
	"io"
	"log/slog"
	"os"
)

// Config controls how a Logger is constructed.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
	Output io.Writer
}

// DefaultConfig returns a text logger writing to stderr at info level.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Format: "text", Output: os.Stderr}
}

// New builds a *slog.Logger from the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

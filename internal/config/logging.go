package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the text logger the binaries write to w. level is one of
// debug, info, warn or error.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

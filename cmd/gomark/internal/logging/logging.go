// Package logging wires a stderr-only slog.Handler to a pair of pflags,
// adapted from MacroPower-x's log package: one Config registers
// "--log-level"/"--log-format" and builds a handler on demand. No
// internal conversion state is ever logged to stdout (spec.md §7).
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

// Format selects the slog handler's wire format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// Config holds the CLI-bound level/format strings.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a Config defaulting to "info"/"text".
func NewConfig() *Config {
	return &Config{Level: "info", Format: "text"}
}

// RegisterFlags adds --log-level/--log-format to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, "log-level", c.Level, "log level, one of: debug, info, warn, error")
	flags.StringVar(&c.Format, "log-format", c.Format, "log format, one of: text, json")
}

// NewLogger builds a *slog.Logger writing to w (always os.Stderr in
// practice) per the configured level and format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

func parseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Package logging builds the structured loggers shared by the CLI and the core packages.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when the configured level is empty or unknown
const DefaultLevel = log.WarnLevel

// New returns a logger writing to w at the given level ("debug", "info", "warn", "error").
// A nil writer means stderr so log lines never interleave with command output on stdout.
func New(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = DefaultLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "flexiplan",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// Discard returns a logger that drops everything. Packages fall back to it when
// the caller did not inject one.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

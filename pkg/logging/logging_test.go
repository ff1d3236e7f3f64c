package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", &buf)

	logger.Debug("hidden detail")
	logger.Info("search finished", "count", 4)

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Errorf("expected debug line to be filtered at info level, got: %s", out)
	}
	if !strings.Contains(out, "search finished") || !strings.Contains(out, "count=4") {
		t.Errorf("expected info line with key/value pair, got: %s", out)
	}
}

func TestNew_UnknownLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := New("chatty", &buf)

	logger.Info("should be filtered")
	logger.Warn("should pass")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Errorf("expected info to be filtered at the default warn level, got: %s", out)
	}
	if !strings.Contains(out, "should pass") {
		t.Errorf("expected warn line, got: %s", out)
	}
}

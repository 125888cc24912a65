package internal

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestLoggerSuppressesBelowLevel(t *testing.T) {
	buf := captureLog(t)
	logger := NewLogger(LogLevelWarn)

	logger.Debug("hidden %d", 1)
	logger.Info("also hidden")
	logger.Warn("visible warning")
	logger.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below Warn should be suppressed, got: %q", out)
	}
	if !strings.Contains(out, "[WARN] visible warning") {
		t.Errorf("warn message missing, got: %q", out)
	}
	if !strings.Contains(out, "[ERROR] visible error") {
		t.Errorf("error message missing, got: %q", out)
	}
}

func TestNewDefaultLoggerReadsEnvironment(t *testing.T) {
	cases := []struct {
		env  string
		want LogLevel
	}{
		{"ERROR", LogLevelError},
		{"WARN", LogLevelWarn},
		{"INFO", LogLevelInfo},
		{"DEBUG", LogLevelDebug},
		{"", LogLevelInfo},
		{"VERBOSE", LogLevelInfo},
	}
	for _, tc := range cases {
		t.Setenv("LOG_LEVEL", tc.env)
		if got := NewDefaultLogger().level; got != tc.want {
			t.Errorf("LOG_LEVEL=%q: level = %d, want %d", tc.env, got, tc.want)
		}
	}
}

func TestLoggerTagsByLevel(t *testing.T) {
	buf := captureLog(t)
	logger := NewLogger(LogLevelDebug)

	logger.Debug("stage detail for %s", "r_pump")

	if !strings.Contains(buf.String(), "[DEBUG] stage detail for r_pump") {
		t.Errorf("debug output missing tag or message: %q", buf.String())
	}
}

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
	saved, savedLevel, savedDebug := logger, currentLevel, debugMode
	logger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		logger, currentLevel, debugMode = saved, savedLevel, savedDebug
	})
	return &buf
}

func TestLogLevels(t *testing.T) {
	buf := captureLog(t)

	InitLogger(LevelInfo, false)
	Debug("hidden debug")
	Info("hidden info")
	Error("shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("release logger printed filtered messages: %q", out)
	}
	if !strings.Contains(out, "ERROR: shown 1") {
		t.Errorf("missing error line: %q", out)
	}

	buf.Reset()
	InitLogger(LevelDebug, true)
	Debug("trace\n")

	out = buf.String()
	if !strings.Contains(out, "DEBUG: trace") || strings.Contains(out, "trace\n\n") {
		t.Errorf("debug line = %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Errorf("debug line lacks caller info: %q", out)
	}
}

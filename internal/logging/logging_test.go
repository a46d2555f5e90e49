package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", "text", &buf)

	logger.Info("list refreshed", "files", 3)

	out := buf.String()
	if !strings.Contains(out, "list refreshed") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "files=3") {
		t.Errorf("expected files=3 in output, got: %s", out)
	}
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", "json", &buf)

	logger.Info("list refreshed", "files", 3)

	out := buf.String()
	if !strings.Contains(out, `"msg":"list refreshed"`) {
		t.Errorf("expected JSON msg field, got: %s", out)
	}
	if !strings.Contains(out, `"files":3`) {
		t.Errorf("expected JSON files field, got: %s", out)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("warn", "text", &buf)

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("expected warn to pass, got: %s", out)
	}
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("chatty", "text", &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug filtered at default level, got: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected info to pass at default level, got: %s", out)
	}
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "info", Terminal: &buf})
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}
	defer closeFn()

	logger.Info("hello", "k", "v")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log output, got %q", buf.String())
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "warn", Terminal: &buf})
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}
	defer closeFn()

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn should pass at warn level")
	}
}

func TestNewFileFanout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitflap.log")
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "info", FilePath: path, Terminal: &buf})
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}

	logger.Info("fanout")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fanout") {
		t.Error("log file should contain the record")
	}
	if !strings.Contains(buf.String(), "fanout") {
		t.Error("terminal should also contain the record")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "shout"}); err == nil {
		t.Error("invalid level should fail")
	}
}

func TestNewNoHandlersDiscards(t *testing.T) {
	logger, closeFn, err := New(Options{Level: "info"})
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}
	defer closeFn()

	// Must not panic with nowhere to write.
	logger.Info("dropped")
}

package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logscribe/internal/config"
	"logscribe/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	logger, closeLog, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	defer closeLog()
	if logger == nil {
		t.Fatal("expected logger instance")
	}
}

func TestConsoleLoggerFormatsComponentAndRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, closeLog, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeLog()

	logger = logging.NewComponentLogger(logger, "batch")
	logger = logging.WithRunID(logger, "1a2b3c4d-0000-4000-8000-000000000000")
	logger.Info("transcribed", "file", "a.wav", "chars", 4, logging.Error(errors.New("boom now")))

	content := readLog(t, logPath)
	for _, want := range []string{"INFO  batch/1a2b3c4d: transcribed", "file=a.wav", "chars=4", `error="boom now"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Contains(content, "component=") || strings.Contains(content, "run_id=") {
		t.Fatalf("header fields should not repeat as attributes: %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, closeLog, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeLog()
	logger.Debug("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestLevelFiltersRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, closeLog, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeLog()
	logger.Info("hidden")
	logger.Warn("shown")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") || !strings.Contains(content, "shown") {
		t.Fatalf("unexpected filtering: %q", content)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, closeLog, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeLog()
	logging.WithRunID(logger, "run-1").Info("transcribing", "file", "a.wav")

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "info" || record["msg"] != "transcribing" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["run_id"] != "run-1" || record["file"] != "a.wav" {
		t.Fatalf("missing attributes: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "logscribe.log")
	logger, closeLog, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "batch").Warn("skipped", "file", "a b.wav")

	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	logger.Warn("after close")

	content := readLog(t, cfg.Logging.File)
	if !strings.Contains(content, `WARN  batch: skipped file="a b.wav"`) {
		t.Fatalf("unexpected log line %q", content)
	}
	if strings.Contains(content, "after close") {
		t.Fatalf("expected the log file to be closed, got %q", content)
	}
}

func TestNewClosesFilesOnOpenError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths := []string{filepath.Join(dir, "ok.log"), filepath.Join(blocker, "nested.log")}
	if _, _, err := logging.New(logging.Options{OutputPaths: paths}); err == nil {
		t.Fatal("expected error when a log directory cannot be created")
	}
}

func TestConsoleLoggerGroups(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "groups.log")
	logger, closeLog, err := logging.New(logging.Options{OutputPaths: []string{logPath, logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeLog()
	logger.WithGroup("engine").Info("ready", "model", "tiny")

	content := readLog(t, logPath)
	if strings.Count(content, "\n") != 1 {
		t.Fatalf("duplicate output paths should write once, got %q", content)
	}
	if !strings.Contains(content, "engine.model=tiny") {
		t.Fatalf("expected grouped key in %q", content)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(t.Context(), 8) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.NewComponentLogger(nil, "x").Info("ignored")
}

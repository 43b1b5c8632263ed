package whispercpp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

const sampleJSON = `{
  "result": {"language": "en"},
  "transcription": [
    {"timestamps": {"from": "00:00:00,000", "to": "00:00:01,500"}, "offsets": {"from": 0, "to": 1500}, "text": " Hello there."},
    {"timestamps": {"from": "00:00:01,500", "to": "00:00:03,000"}, "offsets": {"from": 1500, "to": 3000}, "text": " [BLANK_AUDIO]"}
  ]
}`

func TestTranscribeFileParsesJSON(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "trial_01.wav")
	outDir := filepath.Join(dir, "work")

	svc := NewService(Config{ModelPath: "/models/ggml-tiny.bin", Language: "en", Threads: 4})
	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return os.WriteFile(argValue(args, "-of")+".json", []byte(sampleJSON), 0o644)
	})

	result, err := svc.TranscribeFile(context.Background(), source, outDir)
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if gotName != DefaultBinary {
		t.Fatalf("expected %s, got %s", DefaultBinary, gotName)
	}
	if argValue(gotArgs, "-m") != "/models/ggml-tiny.bin" || argValue(gotArgs, "-f") != source {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
	if argValue(gotArgs, "-l") != "en" || argValue(gotArgs, "-t") != "4" {
		t.Fatalf("expected language and thread flags, got %v", gotArgs)
	}
	if !slices.Contains(gotArgs, "-oj") {
		t.Fatalf("expected JSON output flag, got %v", gotArgs)
	}
	if result.JSONPath != filepath.Join(outDir, "trial_01.json") {
		t.Fatalf("unexpected json path %q", result.JSONPath)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	if result.Segments[0].Text != " Hello there." || result.Segments[0].End() != 1.5 {
		t.Fatalf("unexpected first segment: %+v", result.Segments[0])
	}
	if result.Segments[1].Start() != 1.5 {
		t.Fatalf("unexpected second segment start: %v", result.Segments[1].Start())
	}
}

func TestBuildArgsOmitsUnsetOptions(t *testing.T) {
	svc := NewService(Config{Binary: "main", ModelPath: "m.bin"})
	args := svc.buildArgs("a.wav", "/tmp/a")
	if slices.Contains(args, "-l") || slices.Contains(args, "-t") {
		t.Fatalf("unexpected optional flags: %v", args)
	}
	if svc.Binary() != "main" {
		t.Fatalf("expected custom binary, got %s", svc.Binary())
	}
}

func TestTranscribeFileRequiresModel(t *testing.T) {
	_, err := NewService(Config{}).TranscribeFile(context.Background(), "a.wav", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "model path") {
		t.Fatalf("expected model path error, got %v", err)
	}
}

func TestTranscribeFileRunnerError(t *testing.T) {
	svc := NewService(Config{ModelPath: "m.bin"})
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("failed to read WAV file")
	})
	_, err := svc.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "a.wav"), "")
	if err == nil || !strings.Contains(err.Error(), "whisper.cpp") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logscribe/internal/engine"
	"logscribe/internal/services"
	"logscribe/internal/transcript"
)

type scriptedEngine struct {
	segments map[string][]string
	fail     map[string]error
	calls    []string
}

func (e *scriptedEngine) Name() string  { return "scripted" }
func (e *scriptedEngine) Model() string { return "tiny" }

func (e *scriptedEngine) Transcribe(_ context.Context, path string) ([]engine.Segment, error) {
	name := filepath.Base(path)
	e.calls = append(e.calls, name)
	if err := e.fail[name]; err != nil {
		return nil, err
	}
	var out []engine.Segment
	for _, text := range e.segments[name] {
		out = append(out, engine.Segment{Text: text})
	}
	return out, nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("RIFF"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func newRunner(eng engine.Engine, opts Options) *Runner {
	if opts.Model == "" {
		opts.Model = "tiny"
	}
	return NewRunner(transcript.NewTranscriber(eng), opts)
}

func TestRunWritesSortedRows(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.wav", "a.wav", "notes.txt")
	eng := &scriptedEngine{segments: map[string][]string{
		"a.wav": {"Test"},
		"b.wav": {"[NOISE]"},
	}}

	summary, err := newRunner(eng, Options{}).Run(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	output := filepath.Join(dir, "automatic_transcriptions.csv")
	if got, want := readFile(t, output), "wav_file,transcription tiny\na.wav,Test\nb.wav,\n"; got != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
	if strings.Join(eng.calls, ",") != "a.wav,b.wav" {
		t.Fatalf("unexpected call order %v", eng.calls)
	}
	if len(summary.Dirs) != 1 {
		t.Fatalf("expected one dir summary, got %d", len(summary.Dirs))
	}
	d := summary.Dirs[0]
	if d.Output != output || d.Files != 2 || d.Written != 2 || d.Empty != 1 || d.Failed != 0 {
		t.Fatalf("unexpected dir summary: %+v", d)
	}
	if summary.RunID == "" {
		t.Fatal("expected run id")
	}
}

func TestRunAvoidsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.wav")
	existing := filepath.Join(dir, "automatic_transcriptions.csv")
	if err := os.WriteFile(existing, []byte("keep me\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	eng := &scriptedEngine{segments: map[string][]string{"a.wav": {"Roger"}}}

	summary, err := newRunner(eng, Options{}).Run(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := filepath.Join(dir, "automatic_transcriptions_1.csv")
	if summary.Dirs[0].Output != want {
		t.Fatalf("expected %s, got %s", want, summary.Dirs[0].Output)
	}
	if readFile(t, existing) != "keep me\n" {
		t.Fatal("existing output was modified")
	}
	if got := readFile(t, want); got != "wav_file,transcription tiny\na.wav,Roger\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunSharedOutFile(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFiles(t, first, "a.wav")
	writeFiles(t, second, "c.wav")
	out := filepath.Join(t.TempDir(), "all.csv")
	eng := &scriptedEngine{segments: map[string][]string{"a.wav": {"one"}, "c.wav": {"two"}}}

	summary, err := newRunner(eng, Options{OutFile: out, Model: "base"}).Run(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := readFile(t, out); got != "wav_file,transcription base\na.wav,one\nc.wav,two\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if summary.Dirs[0].Output != out || summary.Dirs[1].Output != out {
		t.Fatalf("expected shared output, got %+v", summary.Dirs)
	}
}

func TestRunCustomFileName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.wav")
	eng := &scriptedEngine{segments: map[string][]string{"a.wav": {"x"}}}
	summary, err := newRunner(eng, Options{FileName: "atc.csv"}).Run(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Dirs[0].Output != filepath.Join(dir, "atc.csv") {
		t.Fatalf("unexpected output %s", summary.Dirs[0].Output)
	}
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.wav", "b.wav", "c.wav")
	eng := &scriptedEngine{
		segments: map[string][]string{"a.wav": {"ok"}, "c.wav": {"never"}},
		fail:     map[string]error{"b.wav": errors.New("decoder crashed")},
	}

	summary, err := newRunner(eng, Options{}).Run(context.Background(), []string{dir})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if strings.Join(eng.calls, ",") != "a.wav,b.wav" {
		t.Fatalf("expected run to stop at b.wav, calls=%v", eng.calls)
	}
	if got := readFile(t, filepath.Join(dir, "automatic_transcriptions.csv")); got != "wav_file,transcription tiny\na.wav,ok\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if summary.Dirs[0].Written != 1 {
		t.Fatalf("unexpected summary %+v", summary.Dirs[0])
	}
}

func TestRunContinueOnError(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.wav", "b.wav", "c.wav")
	eng := &scriptedEngine{
		segments: map[string][]string{"a.wav": {"ok"}, "c.wav": {"fine"}},
		fail:     map[string]error{"b.wav": errors.New("decoder crashed")},
	}

	summary, err := newRunner(eng, Options{ContinueOnError: true}).Run(context.Background(), []string{dir})
	if err == nil || !strings.Contains(err.Error(), "1 of 3 files failed") {
		t.Fatalf("expected failure count error, got %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "automatic_transcriptions.csv")); got != "wav_file,transcription tiny\na.wav,ok\nc.wav,fine\n" {
		t.Fatalf("unexpected output %q", got)
	}
	totals := summary.Totals()
	if totals.Failed != 1 || totals.Written != 2 || len(totals.Failures) != 1 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if f := totals.Failures[0]; f.File != "b.wav" || f.Kind != "transcription" {
		t.Fatalf("unexpected failure %+v", f)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	eng := &scriptedEngine{}
	_, err := newRunner(eng, Options{}).Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRunEmptyDirectoryCreatesNoFile(t *testing.T) {
	dir := t.TempDir()
	summary, err := newRunner(&scriptedEngine{}, Options{}).Run(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(summary.Dirs[0].Output); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestRunRequiresDirectories(t *testing.T) {
	if _, err := newRunner(&scriptedEngine{}, Options{}).Run(context.Background(), nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.wav")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRunner(&scriptedEngine{}, Options{}).Run(ctx, []string{dir})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunRendersProgress(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.wav", "b.wav")
	var progress bytes.Buffer
	eng := &scriptedEngine{segments: map[string][]string{"a.wav": {"x"}, "b.wav": {"y"}}}
	if _, err := newRunner(eng, Options{Progress: &progress}).Run(context.Background(), []string{dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(progress.String(), "2/2") {
		t.Fatalf("expected progress count in %q", progress.String())
	}
}

package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Service runs whisper.cpp transcriptions.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper.cpp service with the given configuration.
func NewService(cfg Config) *Service {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = DefaultBinary
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Binary returns the executable the service invokes.
func (s *Service) Binary() string {
	return s.cfg.Binary
}

// ModelPath returns the ggml model file passed to whisper.cpp.
func (s *Service) ModelPath() string {
	return s.cfg.ModelPath
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// TranscribeResult contains the result of a transcription.
type TranscribeResult struct {
	JSONPath string
	Segments []Segment
}

// TranscribeFile transcribes source and parses the JSON transcript that
// whisper.cpp writes into outputDir.
func (s *Service) TranscribeFile(ctx context.Context, source, outputDir string) (TranscribeResult, error) {
	var result TranscribeResult

	if source == "" {
		return result, fmt.Errorf("transcribe: source path required")
	}
	if s.cfg.ModelPath == "" {
		return result, fmt.Errorf("transcribe: model path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	outBase := filepath.Join(outputDir, strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)))
	if err := s.run(ctx, s.cfg.Binary, s.buildArgs(source, outBase)...); err != nil {
		return result, fmt.Errorf("whisper.cpp: %w", err)
	}

	result.JSONPath = outBase + ".json"
	segments, err := LoadSegments(result.JSONPath)
	if err != nil {
		return result, fmt.Errorf("whisper.cpp: %w", err)
	}
	result.Segments = segments
	return result, nil
}

func (s *Service) buildArgs(source, outBase string) []string {
	args := []string{
		"-m", s.cfg.ModelPath,
		"-f", source,
		"-oj",
		"-of", outBase,
		"-np",
	}
	if lang := strings.TrimSpace(s.cfg.Language); lang != "" {
		args = append(args, "-l", lang)
	}
	if s.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(s.cfg.Threads))
	}
	return args
}

// Segment is one entry of the whisper.cpp JSON transcript. Offsets are in
// milliseconds.
type Segment struct {
	Offsets struct {
		From int64 `json:"from"`
		To   int64 `json:"to"`
	} `json:"offsets"`
	Text string `json:"text"`
}

// Start returns the segment start in seconds.
func (s Segment) Start() float64 { return float64(s.Offsets.From) / 1000 }

// End returns the segment end in seconds.
func (s Segment) End() float64 { return float64(s.Offsets.To) / 1000 }

type payload struct {
	Transcription []Segment `json:"transcription"`
}

// LoadSegments loads segments from a whisper.cpp JSON transcript.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse whisper.cpp json: %w", err)
	}
	return p.Transcription, nil
}

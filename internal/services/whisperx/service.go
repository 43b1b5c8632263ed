package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "logscribe/internal/language"
)

// Runner executes an external command. Tests replace it to avoid uvx.
type Runner func(ctx context.Context, name string, args ...string) error

// Service runs WhisperX for one audio file at a time.
type Service struct {
	cfg    Config
	runner Runner
}

func NewService(cfg Config) *Service {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.VADMethod == "" {
		cfg.VADMethod = VADSilero
	}
	return &Service{cfg: cfg, runner: runCommand}
}

// WithCommandRunner swaps the command runner.
func (s *Service) WithCommandRunner(runner Runner) {
	if runner != nil {
		s.runner = runner
	}
}

func (s *Service) Model() string { return s.cfg.Model }

// Result is the parsed WhisperX output for one file.
type Result struct {
	JSONPath string
	// Language is the language WhisperX used, detected or hinted.
	Language string
	Segments []Segment
}

// Segment is one WhisperX segment; times are in seconds.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscribeFile runs WhisperX on source and parses <outputDir>/<stem>.json.
// outputDir defaults to the directory of source.
func (s *Service) TranscribeFile(ctx context.Context, source, outputDir string) (Result, error) {
	if source == "" {
		return Result{}, fmt.Errorf("whisperx: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("whisperx: create output dir: %w", err)
	}

	if err := s.runner(ctx, UVXCommand, s.buildArgs(source, outputDir)...); err != nil {
		return Result{}, fmt.Errorf("whisperx: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	result, err := Load(filepath.Join(outputDir, stem+".json"))
	if err != nil {
		return Result{}, fmt.Errorf("whisperx: %w", err)
	}
	return result, nil
}

func (s *Service) buildArgs(source, outputDir string) []string {
	var args []string
	if s.cfg.CUDAEnabled {
		args = append(args, "--index-url", cudaIndexURL, "--extra-index-url", pypiIndexURL)
	} else {
		args = append(args, "--index-url", pypiIndexURL)
	}

	args = append(args, "whisperx", source,
		"--model", s.cfg.Model,
		"--output_dir", outputDir,
		"--vad_method", s.cfg.VADMethod,
	)
	args = append(args, decodeFlags...)

	if s.cfg.VADMethod == VADPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}
	if lang := s.cfg.Language; lang != "" && lang != langpkg.Auto {
		args = append(args, "--language", lang)
	}
	if s.cfg.CUDAEnabled {
		args = append(args, "--device", "cuda")
	} else {
		args = append(args, "--device", "cpu", "--compute_type", "float32")
	}
	return args
}

// Load parses a WhisperX JSON transcript.
func Load(jsonPath string) (Result, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Result{}, err
	}
	var payload struct {
		Language string    `json:"language"`
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", filepath.Base(jsonPath), err)
	}
	return Result{JSONPath: jsonPath, Language: payload.Language, Segments: payload.Segments}, nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	// torch >= 2.6 defaults torch.load to weights_only, which pyannote checkpoints reject.
	if _, ok := os.LookupEnv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD"); !ok {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, lastLine(output))
	}
	return nil
}

// lastLine keeps error messages readable; WhisperX prints long tracebacks.
func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

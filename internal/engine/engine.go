package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"logscribe/internal/config"
	"logscribe/internal/services"
	"logscribe/internal/services/openaistt"
	"logscribe/internal/services/whispercpp"
	"logscribe/internal/services/whisperx"
)

// Segment is one timed span of recognized text. Start and End are seconds.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Engine turns one audio file into raw segments.
type Engine interface {
	Transcribe(ctx context.Context, path string) ([]Segment, error)
	// Name is the configured engine name (whispercpp, whisperx, openai).
	Name() string
	// Model is the model identifier as the user supplied it.
	Model() string
}

// CommandRunner executes an external tool. Tests substitute it to avoid
// spawning real processes.
type CommandRunner func(ctx context.Context, name string, args ...string) error

type options struct {
	runner     CommandRunner
	httpClient *http.Client
}

// Option customizes engine construction.
type Option func(*options)

// WithCommandRunner replaces process execution for subprocess engines.
func WithCommandRunner(runner CommandRunner) Option {
	return func(o *options) { o.runner = runner }
}

// WithHTTPClient overrides the HTTP client used by the openai engine.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// New constructs the engine selected by cfg.Engine.Name.
func New(cfg *config.Config, opts ...Option) (Engine, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "engine", "init", "configuration unavailable", nil)
	}
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	model := cfg.EngineModel()
	switch cfg.Engine.Name {
	case config.EngineWhisperCPP:
		modelPath, err := whispercpp.ResolveModel(model, cfg.WhisperCPP.ModelsDir)
		if err != nil {
			marker := services.ErrConfiguration
			if errors.Is(err, whispercpp.ErrModelMissing) {
				marker = services.ErrNotFound
			}
			return nil, services.Wrap(marker, "engine", "init", "resolve whisper.cpp model", err)
		}
		svc := whispercpp.NewService(whispercpp.Config{
			Binary:    cfg.WhisperCPP.Binary,
			ModelPath: modelPath,
			Language:  cfg.Engine.Language,
			Threads:   cfg.Engine.Threads,
		})
		if o.runner != nil {
			svc.WithCommandRunner(o.runner)
		}
		return &whisperCPPEngine{svc: svc, model: model}, nil

	case config.EngineWhisperX:
		svc := whisperx.NewService(whisperx.Config{
			Model:       model,
			Language:    cfg.Engine.Language,
			CUDAEnabled: cfg.WhisperX.CUDAEnabled,
			VADMethod:   cfg.WhisperX.VADMethod,
			HFToken:     cfg.WhisperX.HFToken,
		})
		if o.runner != nil {
			svc.WithCommandRunner(whisperx.Runner(o.runner))
		}
		return &whisperXEngine{svc: svc}, nil

	case config.EngineOpenAI:
		if cfg.OpenAI.APIKey == "" && cfg.OpenAI.BaseURL == "" {
			return nil, services.Wrap(services.ErrConfiguration, "engine", "init", "openai.api_key or openai.base_url required", nil)
		}
		client := openaistt.New(openaistt.Config{
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			Model:          model,
			Language:       cfg.Engine.Language,
			TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
		}, openaistt.WithHTTPClient(o.httpClient))
		return &openAIEngine{client: client}, nil

	default:
		return nil, services.Wrap(services.ErrConfiguration, "engine", "init", fmt.Sprintf("unknown engine %q", cfg.Engine.Name), nil)
	}
}

// withWorkDir runs fn with a scratch directory that is removed afterwards.
func withWorkDir(fn func(dir string) error) error {
	dir, err := os.MkdirTemp("", "logscribe-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)
	return fn(dir)
}

func transcriptionFailed(engine, path string, err error) error {
	return services.Wrap(services.ErrExternalTool, engine, "transcribe", filepath.Base(path), err)
}

type whisperCPPEngine struct {
	svc   *whispercpp.Service
	model string
}

func (e *whisperCPPEngine) Name() string  { return config.EngineWhisperCPP }
func (e *whisperCPPEngine) Model() string { return e.model }

func (e *whisperCPPEngine) Transcribe(ctx context.Context, path string) ([]Segment, error) {
	var segments []Segment
	err := withWorkDir(func(dir string) error {
		result, err := e.svc.TranscribeFile(ctx, path, dir)
		if err != nil {
			return err
		}
		segments = make([]Segment, 0, len(result.Segments))
		for _, seg := range result.Segments {
			segments = append(segments, Segment{Start: seg.Start(), End: seg.End(), Text: seg.Text})
		}
		return nil
	})
	if err != nil {
		return nil, transcriptionFailed(e.Name(), path, err)
	}
	return segments, nil
}

type whisperXEngine struct {
	svc *whisperx.Service
}

func (e *whisperXEngine) Name() string  { return config.EngineWhisperX }
func (e *whisperXEngine) Model() string { return e.svc.Model() }

func (e *whisperXEngine) Transcribe(ctx context.Context, path string) ([]Segment, error) {
	var segments []Segment
	err := withWorkDir(func(dir string) error {
		result, err := e.svc.TranscribeFile(ctx, path, dir)
		if err != nil {
			return err
		}
		segments = make([]Segment, 0, len(result.Segments))
		for _, seg := range result.Segments {
			segments = append(segments, Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
		}
		return nil
	})
	if err != nil {
		return nil, transcriptionFailed(e.Name(), path, err)
	}
	return segments, nil
}

type openAIEngine struct {
	client *openaistt.Client
}

func (e *openAIEngine) Name() string  { return config.EngineOpenAI }
func (e *openAIEngine) Model() string { return e.client.Model() }

func (e *openAIEngine) Transcribe(ctx context.Context, path string) ([]Segment, error) {
	result, err := e.client.TranscribeFile(ctx, path)
	if err != nil {
		return nil, transcriptionFailed(e.Name(), path, err)
	}
	segments := make([]Segment, 0, len(result))
	for _, seg := range result {
		segments = append(segments, Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return segments, nil
}

// Texts returns the text of each segment in order.
func Texts(segments []Segment) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		out = append(out, seg.Text)
	}
	return out
}

// Describe renders "name/model" for logs and tables.
func Describe(e Engine) string {
	if e == nil {
		return ""
	}
	return strings.Join([]string{e.Name(), e.Model()}, "/")
}

package transcript

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"logscribe/internal/engine"
	"logscribe/internal/fileutil"
	"logscribe/internal/logging"
	"logscribe/internal/services"
	"logscribe/internal/transcache"
)

// Cache stores cleaned transcriptions between runs.
type Cache interface {
	Lookup(ctx context.Context, key transcache.Key) (string, bool, error)
	Put(ctx context.Context, key transcache.Key, text string) error
}

// Result is the cleaned text for one file.
type Result struct {
	Text   string
	Cached bool
}

// Transcriber wraps an engine with cleaning and an optional cache.
type Transcriber struct {
	engine   engine.Engine
	cache    Cache
	language string
	logger   *slog.Logger
	hashFile func(path string) (string, error)
}

// Option customizes a Transcriber.
type Option func(*Transcriber)

// WithCache enables cache lookups. language becomes part of the cache key so
// hints that change the output do not share entries.
func WithCache(cache Cache, language string) Option {
	return func(t *Transcriber) {
		t.cache = cache
		t.language = language
	}
}

// WithLogger sets the logger used for cache warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transcriber) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranscriber builds a Transcriber around eng.
func NewTranscriber(eng engine.Engine, opts ...Option) *Transcriber {
	t := &Transcriber{
		engine:   eng,
		logger:   logging.NewNop(),
		hashFile: fileutil.HashFile,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Transcribe returns the cleaned transcription of path, or "" when the engine
// produced nothing but silence and annotations.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	result, err := t.Run(ctx, path)
	return result.Text, err
}

// Run is Transcribe with cache provenance.
func (t *Transcriber) Run(ctx context.Context, path string) (Result, error) {
	key, haveKey := t.cacheKey(path)
	if haveKey {
		text, ok, err := t.cache.Lookup(ctx, key)
		switch {
		case err != nil:
			t.logger.Warn("transcript cache lookup failed", "file", filepath.Base(path), logging.Error(err))
		case ok:
			return Result{Text: text, Cached: true}, nil
		}
	}

	segments, err := t.engine.Transcribe(ctx, path)
	if err != nil {
		if !errors.Is(err, services.ErrExternalTool) {
			err = services.Wrap(services.ErrExternalTool, t.engine.Name(), "transcribe", filepath.Base(path), err)
		}
		return Result{}, err
	}
	text := Clean(engine.Texts(segments))

	if haveKey {
		if err := t.cache.Put(ctx, key, text); err != nil {
			t.logger.Warn("transcript cache store failed", "file", filepath.Base(path), logging.Error(err))
		}
	}
	return Result{Text: text}, nil
}

func (t *Transcriber) cacheKey(path string) (transcache.Key, bool) {
	if t.cache == nil {
		return transcache.Key{}, false
	}
	digest, err := t.hashFile(path)
	if err != nil {
		t.logger.Warn("hash audio for cache failed", "file", filepath.Base(path), logging.Error(err))
		return transcache.Key{}, false
	}
	return transcache.Key{
		Digest:   digest,
		Engine:   t.engine.Name(),
		Model:    t.engine.Model(),
		Language: t.language,
	}, true
}

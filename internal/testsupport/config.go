package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"logscribe/internal/config"
	"logscribe/internal/services/whispercpp"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.WhisperCPP.ModelsDir = filepath.Join(base, "models")
	cfgVal.Cache.Path = filepath.Join(base, "cache", "transcripts.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithModelFile places an empty ggml file for model in the models directory
// and selects that model.
func WithModelFile(model string) ConfigOption {
	return func(b *configBuilder) {
		dir := b.cfg.WhisperCPP.ModelsDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir models dir: %v", err)
		}
		target := filepath.Join(dir, whispercpp.ModelFileName(model))
		if err := os.WriteFile(target, []byte("ggml"), 0o644); err != nil {
			b.t.Fatalf("write model %s: %v", model, err)
		}
		b.cfg.Engine.Model = model
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the whisper.cpp binary is stubbed.
// Each stub exits 0 without output.
func WithStubbedBinaries(names ...string) ConfigOption {
	return WithStubScript("#!/bin/sh\nexit 0\n", names...)
}

// WithStubScript is WithStubbedBinaries with a custom shell script body.
func WithStubScript(script string, names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{whispercpp.DefaultBinary}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.WhisperCPP.ModelsDir)
}

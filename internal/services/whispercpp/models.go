package whispercpp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrModelMissing reports a known model name whose ggml file is not present in
// the models directory.
var ErrModelMissing = errors.New("model file missing")

// ErrUnknownModel reports a model that is neither a file nor a known name.
var ErrUnknownModel = errors.New("unknown model")

var knownModels = []string{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large-v1", "large-v2", "large-v3", "large-v3-turbo",
}

// KnownModels lists the model names accepted in place of a file path.
func KnownModels() []string {
	out := make([]string, len(knownModels))
	copy(out, knownModels)
	return out
}

// IsKnownModel reports whether name is one of KnownModels.
func IsKnownModel(name string) bool {
	for _, m := range knownModels {
		if m == name {
			return true
		}
	}
	return false
}

// ModelFileName returns the ggml file name whisper.cpp uses for a model name.
func ModelFileName(name string) string {
	return "ggml-" + name + ".bin"
}

// ResolveModel turns a model identifier into a model file path. An existing
// file is used as-is; a known model name maps to its ggml file inside
// modelsDir, which must already exist there.
func ResolveModel(model, modelsDir string) (string, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}

	if info, err := os.Stat(model); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(model)
		if err != nil {
			return "", fmt.Errorf("resolve model path %q: %w", model, err)
		}
		return abs, nil
	}

	if !IsKnownModel(model) {
		return "", fmt.Errorf("%w %q: expected a model file or one of %s", ErrUnknownModel, model, strings.Join(knownModels, ", "))
	}

	path := filepath.Join(modelsDir, ModelFileName(model))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s not found (download it into %s)", ErrModelMissing, ModelFileName(model), modelsDir)
		}
		return "", fmt.Errorf("stat model %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrModelMissing, path)
	}
	return path, nil
}

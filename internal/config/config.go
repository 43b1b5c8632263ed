package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Engine selects the transcription engine and the settings shared by all engines.
type Engine struct {
	Name     string `toml:"name"`
	Model    string `toml:"model"`
	Language string `toml:"language"`
	Threads  int    `toml:"threads"`
}

// WhisperCPP contains settings for the whisper.cpp command line engine.
type WhisperCPP struct {
	Binary    string `toml:"binary"`
	ModelsDir string `toml:"models_dir"`
}

// WhisperX contains settings for the WhisperX engine.
type WhisperX struct {
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
}

// OpenAI contains settings for OpenAI-compatible transcription servers.
type OpenAI struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Output contains CSV output and run policy settings.
type Output struct {
	FileName        string `toml:"file_name"`
	ContinueOnError bool   `toml:"continue_on_error"`
	Progress        bool   `toml:"progress"`
}

// Cache contains configuration for the transcript cache.
type Cache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/logscribe/transcripts.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File receives a copy of the log output when set.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for logscribe.
//
// Configuration sections:
//   - Engine: engine selection, model, language hint and threads
//   - WhisperCPP: whisper.cpp binary and ggml models directory
//   - WhisperX: uvx-launched WhisperX options
//   - OpenAI: OpenAI-compatible transcription endpoint
//   - Output: CSV file naming and failure policy
//   - Cache: transcript cache keyed by audio digest
//   - Logging: log format, level and optional log file
type Config struct {
	Engine     Engine     `toml:"engine"`
	WhisperCPP WhisperCPP `toml:"whispercpp"`
	WhisperX   WhisperX   `toml:"whisperx"`
	OpenAI     OpenAI     `toml:"openai"`
	Output     Output     `toml:"output"`
	Cache      Cache      `toml:"cache"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/logscribe/config.toml")
}

// Load locates, parses, and validates a configuration file. A .env file in the
// working directory is loaded first so its values act as environment
// fallbacks. The returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, "", false, err
	}

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// loadDotEnv loads path into the process environment when it exists.
// Variables already set keep their values.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("logscribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EngineModel returns the model identifier for the selected engine, falling
// back to that engine's default. The value is also the one written into the
// CSV header.
func (c *Config) EngineModel() string {
	if model := strings.TrimSpace(c.Engine.Model); model != "" {
		return model
	}
	switch c.Engine.Name {
	case EngineWhisperX:
		return defaultWhisperXModel
	case EngineOpenAI:
		return defaultOpenAIModel
	default:
		return defaultWhisperCPPModel
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultModelsDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "logscribe", "models")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/logscribe/models"
	}
	return filepath.Join(home, ".local", "share", "logscribe", "models")
}

func defaultCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "logscribe", "transcripts.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/logscribe/transcripts.db"
	}
	return filepath.Join(home, ".cache", "logscribe", "transcripts.db")
}

// ErrSampleExists reports that WriteSample refused to replace an existing file.
var ErrSampleExists = errors.New("config file already exists")

// WriteSample writes the sample configuration to path, or to the default
// location when path is empty, and returns the resolved destination. An
// existing file is only replaced when overwrite is set.
func WriteSample(path string, overwrite bool) (string, error) {
	target, err := expandPath(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	if target == "" {
		if target, err = DefaultConfigPath(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(target, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrSampleExists, target)
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", target, err)
	}
	if _, err := f.WriteString(sampleConfig); err != nil {
		f.Close()
		return "", fmt.Errorf("write sample config: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return target, nil
}

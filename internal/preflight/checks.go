package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sys/unix"

	"logscribe/internal/config"
	"logscribe/internal/deps"
	"logscribe/internal/services/whispercpp"
	"logscribe/internal/transcache"
)

// CheckOpenAI verifies that the transcription endpoint answers a model
// listing with the configured key. A single attempt with a 10-second timeout.
func CheckOpenAI(ctx context.Context, apiKey, baseURL string) Result {
	const name = "OpenAI endpoint"

	apiKey = strings.TrimSpace(apiKey)
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if apiKey == "" && baseURL == "" {
		return Result{Name: name, Detail: "API key missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	apiCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		apiCfg.BaseURL = baseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	client := openai.NewClientWithConfig(apiCfg)

	if _, err := client.ListModels(checkCtx); err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.HTTPStatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return Result{Name: name, Detail: "auth failed (invalid api key)"}
			}
			return Result{Name: name, Detail: fmt.Sprintf("check failed (%d)", apiErr.HTTPStatusCode)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckWhisperCPPModel verifies that the model resolves to a ggml file.
func CheckWhisperCPPModel(model, modelsDir string) Result {
	const name = "whisper.cpp model"
	path, err := whispercpp.ResolveModel(model, modelsDir)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckCache opens the transcript cache, creating it when absent.
func CheckCache(path string) Result {
	const name = "Transcript cache"
	store, err := transcache.Open(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	_ = store.Close()
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable. Output files are created inside input directories, so
// both permissions matter.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps lists the external binaries the configured engine needs.
// The openai engine runs in-process and needs none.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	var requirements []deps.Requirement
	switch cfg.Engine.Name {
	case config.EngineWhisperCPP:
		requirements = append(requirements, deps.Requirement{
			Name:        "whisper.cpp",
			Command:     cfg.WhisperCPP.Binary,
			Description: "Required for whisper.cpp transcription",
		})
	case config.EngineWhisperX:
		requirements = append(requirements, deps.Requirement{
			Name:        "uvx",
			Command:     "uvx",
			Description: "Required for WhisperX-driven transcription",
		})
		if cfg.WhisperX.CUDAEnabled {
			requirements = append(requirements, deps.Requirement{
				Name:        "nvidia-smi",
				Command:     "nvidia-smi",
				Description: "Confirms a CUDA-capable GPU driver",
				Optional:    true,
			})
		}
	}
	return deps.CheckBinaries(requirements)
}

package preflight

import (
	"context"

	"logscribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Warn marks a passing result for an optional dependency that is missing.
	Warn   bool
	Detail string
}

// RunAll executes the checks that apply to the configured engine, followed by
// one directory check per input directory.
func RunAll(ctx context.Context, cfg *config.Config, dirs []string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		result := Result{
			Name:   status.Name,
			Passed: status.Available || status.Optional,
			Warn:   !status.Available && status.Optional,
			Detail: status.Detail,
		}
		if status.Available {
			result.Detail = status.Path
		}
		results = append(results, result)
	}

	switch cfg.Engine.Name {
	case config.EngineWhisperCPP:
		results = append(results, CheckWhisperCPPModel(cfg.EngineModel(), cfg.WhisperCPP.ModelsDir))
	case config.EngineOpenAI:
		results = append(results, CheckOpenAI(ctx, cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL))
	}

	if cfg.Cache.Enabled {
		results = append(results, CheckCache(cfg.Cache.Path))
	}

	for _, dir := range dirs {
		results = append(results, CheckDirectoryAccess("Input directory", dir))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEngine() error {
	switch c.Engine.Name {
	case EngineWhisperCPP, EngineWhisperX, EngineOpenAI:
	default:
		return fmt.Errorf("engine.name must be one of %s, %s or %s (got %q)", EngineWhisperCPP, EngineWhisperX, EngineOpenAI, c.Engine.Name)
	}
	if c.Engine.Threads < 0 {
		return errors.New("engine.threads must be zero or positive")
	}
	if c.Engine.Name == EngineWhisperCPP && strings.TrimSpace(c.WhisperCPP.Binary) == "" {
		return errors.New("whispercpp.binary must be set")
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	switch c.WhisperX.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("whisperx.vad_method must be silero or pyannote (got %q)", c.WhisperX.VADMethod)
	}
	if c.Engine.Name == EngineWhisperX && c.WhisperX.VADMethod == "pyannote" && c.WhisperX.HFToken == "" {
		return errors.New("whisperx.hf_token is required when whisperx.vad_method is pyannote. Set HF_TOKEN env var or edit the config file")
	}
	return nil
}

func (c *Config) validateOpenAI() error {
	if c.Engine.Name != EngineOpenAI {
		return nil
	}
	if c.OpenAI.APIKey == "" && c.OpenAI.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/logscribe/config.toml"
		}
		return fmt.Errorf("openai.api_key is required for the hosted API. Set OPENAI_API_KEY env var or edit %s (create with 'logscribe config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.FileName == "" {
		return errors.New("output.file_name must be set")
	}
	if strings.ContainsAny(c.Output.FileName, `/\`) {
		return fmt.Errorf("output.file_name must be a bare file name (got %q)", c.Output.FileName)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" {
		return errors.New("cache.path must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
}

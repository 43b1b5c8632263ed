package config

// Engine names accepted in engine.name and --engine.
const (
	EngineWhisperCPP = "whispercpp"
	EngineWhisperX   = "whisperx"
	EngineOpenAI     = "openai"
)

const (
	defaultEngine               = EngineWhisperCPP
	defaultLanguage             = "en"
	defaultWhisperCPPBinary     = "whisper-cli"
	defaultWhisperCPPModel      = "large-v1"
	defaultWhisperXModel        = "large-v3"
	defaultWhisperXVADMethod    = "silero"
	defaultOpenAIModel          = "whisper-1"
	defaultOpenAITimeoutSeconds = 300
	defaultOutputFileName       = "automatic_transcriptions.csv"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Engine: Engine{
			Name:     defaultEngine,
			Language: defaultLanguage,
		},
		WhisperCPP: WhisperCPP{
			Binary:    defaultWhisperCPPBinary,
			ModelsDir: defaultModelsDir(),
		},
		WhisperX: WhisperX{
			VADMethod: defaultWhisperXVADMethod,
		},
		OpenAI: OpenAI{
			TimeoutSeconds: defaultOpenAITimeoutSeconds,
		},
		Output: Output{
			FileName: defaultOutputFileName,
			Progress: true,
		},
		Cache: Cache{
			Path: defaultCachePath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package whispercpp

// Config captures runtime settings for the whisper.cpp command line tool.
type Config struct {
	// Binary is the whisper.cpp executable (default "whisper-cli").
	Binary string
	// ModelPath is the resolved ggml model file.
	ModelPath string
	// Language is an ISO 639-1 hint or "auto".
	Language string
	// Threads is the number of inference threads; zero keeps the tool default.
	Threads int
}

// whisper.cpp defaults.
const (
	DefaultBinary = "whisper-cli"
	DefaultModel  = "large-v1"
)

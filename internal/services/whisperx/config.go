package whisperx

// Config selects the WhisperX model and runtime for a Service.
type Config struct {
	Model string
	// Language is a language hint; empty or "auto" lets WhisperX detect it.
	Language    string
	CUDAEnabled bool
	// VADMethod is VADSilero or VADPyannote. Pyannote needs HFToken.
	VADMethod string
	HFToken   string
}

const (
	DefaultModel = "large-v3"

	VADSilero   = "silero"
	VADPyannote = "pyannote"

	// UVXCommand launches WhisperX in an ephemeral environment.
	UVXCommand = "uvx"

	cudaIndexURL = "https://download.pytorch.org/whl/cu128"
	pypiIndexURL = "https://pypi.org/simple"
)

// decodeFlags tune WhisperX for short single-speaker recordings: greedy
// temperature, a wide beam and sentence-level segments.
var decodeFlags = []string{
	"--batch_size", "4",
	"--beam_size", "5",
	"--best_of", "5",
	"--temperature", "0.0",
	"--segment_resolution", "sentence",
	"--output_format", "json",
}

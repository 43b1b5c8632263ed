// Package engine defines the speech-to-text contract used by the batch runner
// and adapts the whisper.cpp, WhisperX and OpenAI-compatible services to it.
//
// New builds the engine named in configuration once per run. Construction
// failures carry services.ErrConfiguration; per-file failures carry
// services.ErrExternalTool.
package engine

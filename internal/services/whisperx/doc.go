// Package whisperx runs WhisperX through uvx and reads back its JSON output.
//
// TranscribeFile writes <stem>.json into a caller-chosen directory and parses
// the segments and detected language from it. GPU use, VAD method and the
// language hint come from Config.
package whisperx

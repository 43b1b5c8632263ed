// Package openaistt transcribes audio files through an OpenAI-compatible
// /v1/audio/transcriptions endpoint.
//
// The client requests verbose_json so segment boundaries survive; servers
// that only return plain text yield a single segment.
package openaistt

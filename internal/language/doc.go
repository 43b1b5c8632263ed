// Package language normalizes the spoken-language hint passed to
// transcription engines and names it for log output.
//
// Codes, English names and regional BCP 47 tags such as "en-GB" all reduce to
// the ISO 639-1 base language the engines expect; "auto" leaves detection to
// the engine.
package language

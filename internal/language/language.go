package language

import (
	"fmt"
	"strings"

	xtext "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto is the language hint that lets the engine detect the spoken language.
const Auto = "auto"

// names maps English language names, as whisper.cpp prints them, to codes.
var names = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"polish":     "pl",
	"russian":    "ru",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
}

// ISO 639-2/B codes that BCP 47 parsing does not accept.
var bibliographic = map[string]string{
	"fre": "fr",
	"ger": "de",
	"dut": "nl",
	"chi": "zh",
}

// Normalize canonicalizes a spoken-language hint. Empty input and "auto" yield
// Auto. Everything else is reduced to its ISO 639-1 base language, so "EN",
// "eng", "english" and "en-GB" all become "en".
func Normalize(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Auto {
		return Auto, nil
	}
	if c, ok := names[code]; ok {
		return c, nil
	}
	if c, ok := bibliographic[code]; ok {
		return c, nil
	}
	tag, err := xtext.Parse(code)
	if err != nil {
		return "", fmt.Errorf("language %q: %w", code, err)
	}
	if tag == xtext.Und {
		return "", fmt.Errorf("language %q: undetermined; use %q for detection", code, Auto)
	}
	// Base guesses a language for incomplete tags; only an exact base is usable.
	base, confidence := tag.Base()
	if confidence != xtext.Exact || base.IsPrivateUse() {
		return "", fmt.Errorf("language %q: unrecognized", code)
	}
	return base.String(), nil
}

// DisplayName returns the English name of a normalized hint for log output.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	switch {
	case code == "":
		return "unknown"
	case strings.EqualFold(code, Auto):
		return "auto-detect"
	}
	tag, err := xtext.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

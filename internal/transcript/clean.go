package transcript

import "strings"

// Clean trims each segment, discards empty and bracketed ones, and joins the
// survivors with single spaces in their original order.
func Clean(texts []string) string {
	kept := make([]string, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" || IsAnnotation(text) {
			continue
		}
		kept = append(kept, text)
	}
	return strings.Join(kept, " ")
}

// IsAnnotation reports whether an already-trimmed segment is a non-speech
// marker enclosed in square brackets.
func IsAnnotation(text string) bool {
	return strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")
}

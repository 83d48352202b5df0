package normalize

import "strings"

// Small fixed word sets for the bag-of-common-words language heuristic.
// Shared forms ("no", "me") are deliberately excluded from both sets so a
// token votes for at most one language.
var (
	englishMarkers = wordSet("the", "and", "is", "it", "you", "that", "this",
		"for", "with", "was", "have", "but", "are", "they", "very")
	spanishMarkers = wordSet("el", "la", "los", "las", "es", "que", "de",
		"en", "un", "una", "para", "con", "pero", "muy", "esta")
)

// DetectLanguage compares token overlap against the English and Spanish
// marker sets. Ties and an English majority both resolve to "en".
func DetectLanguage(text string) string {
	var english, spanish int
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?;:-()")
		if _, ok := englishMarkers[token]; ok {
			english++
		}
		if _, ok := spanishMarkers[token]; ok {
			spanish++
		}
	}

	if spanish > english {
		return "es"
	}
	return "en"
}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

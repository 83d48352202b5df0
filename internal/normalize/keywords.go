package normalize

import (
	"strings"
	"unicode"

	"reviewlens/internal/stopwords"
)

// maxKeywords bounds the keywords kept per review.
const maxKeywords = 10

// KeywordMode selects the keyword extraction strategy.
type KeywordMode string

const (
	// KeywordsFull removes stop words and reduces tokens to a base form.
	KeywordsFull KeywordMode = "full"
	// KeywordsBasic keeps tokens longer than three characters as-is.
	// Callers get lower keyword quality under this mode, never an error.
	KeywordsBasic KeywordMode = "basic"
)

// Keyworder extracts up to maxKeywords keywords from cleaned text,
// preserving token order.
type Keyworder interface {
	Extract(text string) []string
}

// NewKeyworder returns the extractor for the given mode. Unknown modes fall
// back to the basic extractor.
func NewKeyworder(mode KeywordMode) Keyworder {
	if mode == KeywordsFull {
		return fullKeyworder{}
	}
	return basicKeyworder{}
}

// fullKeyworder drops stop words and short or non-alphabetic tokens, then
// lemmatizes the survivors.
type fullKeyworder struct{}

func (fullKeyworder) Extract(text string) []string {
	var keywords []string
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, ".,!?;:-()")
		if len(token) <= 3 || !isAlpha(token) {
			continue
		}
		if stopwords.IsEnglish(token) {
			continue
		}
		keywords = append(keywords, lemmatize(token))
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// basicKeyworder is the degraded strategy: tokens longer than three
// characters, first ten, no stop-word removal or lemmatization.
type basicKeyworder struct{}

func (basicKeyworder) Extract(text string) []string {
	var keywords []string
	for _, token := range strings.Fields(text) {
		if len(token) <= 3 {
			continue
		}
		keywords = append(keywords, token)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// lemmatize reduces a token to a noun base form with plural-stripping
// rules. It is intentionally conservative: an unrecognized shape is
// returned unchanged.
func lemmatize(token string) string {
	n := len(token)
	switch {
	case strings.HasSuffix(token, "sses"):
		return token[:n-2]
	case strings.HasSuffix(token, "ies") && n > 4:
		return token[:n-3] + "y"
	case strings.HasSuffix(token, "xes"), strings.HasSuffix(token, "zes"),
		strings.HasSuffix(token, "ches"), strings.HasSuffix(token, "shes"):
		return token[:n-2]
	case strings.HasSuffix(token, "ss"), strings.HasSuffix(token, "us"), strings.HasSuffix(token, "is"):
		return token
	case strings.HasSuffix(token, "s"):
		return token[:n-1]
	}
	return token
}

func isAlpha(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return token != ""
}

// Package stopwords holds the shared English stop-word list used by both
// keyword extraction and vocabulary construction.
package stopwords

var english = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cannot", "could", "couldn", "did", "didn", "do", "does", "doesn",
	"doing", "don", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn", "has", "hasn", "have", "haven", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "isn", "it", "its", "itself", "just",
	"me", "more", "most", "mustn", "my", "myself", "no", "nor", "not",
	"now", "of", "off", "on", "once", "only", "or", "other", "ought",
	"our", "ours", "ourselves", "out", "over", "own", "same", "shan",
	"she", "should", "shouldn", "so", "some", "such", "than", "that",
	"the", "their", "theirs", "them", "themselves", "then", "there",
	"these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "very", "was", "wasn", "we", "were", "weren", "what",
	"when", "where", "which", "while", "who", "whom", "why", "will",
	"with", "won", "would", "wouldn", "you", "your", "yours", "yourself",
	"yourselves",
}

var englishSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(english))
	for _, w := range english {
		m[w] = struct{}{}
	}
	return m
}()

// IsEnglish reports whether the given lowercase token is an English stop word.
func IsEnglish(token string) bool {
	_, ok := englishSet[token]
	return ok
}

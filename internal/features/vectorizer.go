// Package features converts cleaned review texts into a weighted
// term-frequency matrix over a bounded n-gram vocabulary.
package features

import (
	"errors"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"reviewlens/internal/config"
	"reviewlens/internal/logger"
	"reviewlens/internal/stopwords"
)

var (
	// ErrEmptyInput is returned when there are no texts to vectorize;
	// clustering cannot meaningfully proceed on zero documents.
	ErrEmptyInput = errors.New("features: no texts to vectorize")
	// ErrEmptyVocabulary is returned when document-frequency pruning
	// leaves no usable terms.
	ErrEmptyVocabulary = errors.New("features: pruning left an empty vocabulary")
)

var tokenPattern = regexp.MustCompile(`\w\w+`)

// Matrix is a dense feature matrix: one row per input text, in input
// order, one column per vocabulary term.
type Matrix struct {
	rows  [][]float64
	terms []string
}

// Rows returns the number of documents in the matrix.
func (m *Matrix) Rows() int { return len(m.rows) }

// Dim returns the vocabulary size (column count).
func (m *Matrix) Dim() int { return len(m.terms) }

// Row returns the weight vector for document i.
func (m *Matrix) Row(i int) []float64 { return m.rows[i] }

// Data returns all row vectors.
func (m *Matrix) Data() [][]float64 { return m.rows }

// Terms returns the fitted vocabulary in column order.
func (m *Matrix) Terms() []string { return m.terms }

// Vectorizer builds TF-IDF representations over word n-grams. It is
// stateless across calls: every Vectorize fits a fresh vocabulary from the
// given corpus, so results depend only on input and configuration.
type Vectorizer struct {
	cfg config.Features
	log *slog.Logger
}

// NewVectorizer creates a Vectorizer with the given feature configuration.
func NewVectorizer(cfg config.Features) *Vectorizer {
	return &Vectorizer{cfg: cfg, log: logger.Get()}
}

// Vectorize fits a vocabulary on texts and returns the weighted matrix.
// The vocabulary excludes stop words, terms in fewer than MinDocFreq
// documents, and terms in more than MaxDocRatio of documents, then keeps
// the top MaxFeatures terms by corpus frequency (ties resolved by
// first-seen order). Deterministic for a fixed input sequence and config.
func (v *Vectorizer) Vectorize(texts []string) (*Matrix, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	docs := make([][]string, len(texts))
	for i, text := range texts {
		docs[i] = v.ngrams(text)
	}

	// Corpus statistics: document frequency, total frequency, and
	// first-seen order per term.
	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, terms := range docs {
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			totalFreq[term]++
			if _, ok := firstSeen[term]; !ok {
				firstSeen[term] = order
				order++
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}

	n := len(texts)
	maxDoc := v.cfg.MaxDocRatio * float64(n)

	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < v.cfg.MinDocFreq {
			continue
		}
		if float64(df) > maxDoc {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// Bound the vocabulary by corpus frequency. Sorting by first-seen
	// order before the stable frequency sort makes ties resolve to the
	// earlier term.
	sort.Slice(candidates, func(i, j int) bool {
		return firstSeen[candidates[i]] < firstSeen[candidates[j]]
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return totalFreq[candidates[i]] > totalFreq[candidates[j]]
	})
	if len(candidates) > v.cfg.MaxFeatures {
		candidates = candidates[:v.cfg.MaxFeatures]
	}

	// Columns in lexicographic order, for a stable readable vocabulary.
	sort.Strings(candidates)
	index := make(map[string]int, len(candidates))
	for i, term := range candidates {
		index[term] = i
	}

	// Smoothed inverse document frequency.
	idf := make([]float64, len(candidates))
	for i, term := range candidates {
		idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	rows := make([][]float64, len(docs))
	for i, terms := range docs {
		row := make([]float64, len(candidates))
		for _, term := range terms {
			if col, ok := index[term]; ok {
				row[col] += idf[col]
			}
		}
		l2Normalize(row)
		rows[i] = row
	}

	v.log.Debug("fitted feature space", "documents", n, "vocabulary", len(candidates))

	return &Matrix{rows: rows, terms: candidates}, nil
}

// ngrams tokenizes a text, drops stop words, and emits n-grams of the
// configured orders joined by single spaces.
func (v *Vectorizer) ngrams(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if stopwords.IsEnglish(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	var terms []string
	for order := v.cfg.NGramMin; order <= v.cfg.NGramMax; order++ {
		for i := 0; i+order <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+order], " "))
		}
	}
	return terms
}

func l2Normalize(row []float64) {
	var sum float64
	for _, v := range row {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}

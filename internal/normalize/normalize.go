package normalize

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"reviewlens/internal/config"
	"reviewlens/internal/core"
	"reviewlens/internal/logger"
	"reviewlens/internal/sentiment"
)

// Cleaning patterns, applied in a fixed order. URL and email stripping must
// run before the character filter, otherwise "http" fragments survive as
// plain words instead of being removed.
var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	charFilterPattern = regexp.MustCompile(`[^\w\s.!?,;:\-()]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	sentenceSplit     = regexp.MustCompile(`[.!?]+`)
)

// Normalizer validates, cleans, and enriches raw reviews. It holds no
// per-call state; a single instance is safe to reuse across runs.
type Normalizer struct {
	cfg       config.Processing
	keyworder Keyworder
	scorer    sentiment.Scorer
	log       *slog.Logger
}

// NewNormalizer creates a Normalizer. The keyword and sentiment strategies
// are resolved here, once, from the configured modes.
func NewNormalizer(cfg config.Processing) *Normalizer {
	return &Normalizer{
		cfg:       cfg,
		keyworder: NewKeyworder(KeywordMode(cfg.Keywords)),
		scorer:    sentiment.NewScorer(sentiment.Mode(cfg.Sentiment)),
		log:       logger.Get(),
	}
}

// Normalize runs the two-pass filter and enrichment over a batch of raw
// reviews. Reviews that fail validation are dropped and logged; a bad
// review never aborts the batch. The returned slice preserves input order.
func (n *Normalizer) Normalize(reviews []core.RawReview) []core.NormalizedReview {
	normalized := make([]core.NormalizedReview, 0, len(reviews))
	dropped := 0

	for _, review := range reviews {
		raw := strings.TrimSpace(review.Text)

		// First pass: raw length bounds, before any cleaning.
		if len(raw) < n.cfg.MinReviewLength || len(raw) > n.cfg.MaxReviewLength {
			dropped++
			continue
		}

		cleaned := CleanText(raw)

		// Second pass: the cleaned text must still be substantial enough
		// to cluster. Near-empty survivors are dropped whole, never kept
		// partially.
		words := strings.Fields(cleaned)
		if len(words) < n.cfg.MinWordCount || len(cleaned) < n.cfg.MinReviewLength {
			dropped++
			continue
		}

		normalized = append(normalized, core.NormalizedReview{
			RawReview:       review,
			CleanedText:     cleaned,
			TextLength:      len(cleaned),
			WordCount:       len(words),
			Keywords:        n.keyworder.Extract(cleaned),
			Sentiment:       n.scorer.Score(cleaned),
			LanguageCode:    DetectLanguage(cleaned),
			DerivedFeatures: deriveFeatures(raw, cleaned, words),
		})
	}

	if dropped > 0 {
		n.log.Warn("dropped reviews during normalization",
			"submitted", len(reviews), "dropped", dropped, "survived", len(normalized))
	} else {
		n.log.Debug("normalized reviews", "count", len(normalized))
	}

	return normalized
}

// CleanText applies the fixed cleaning sequence: lowercase, strip URLs,
// strip email addresses, drop characters outside the conservative
// alphanumeric + basic-punctuation set, collapse whitespace, trim.
// Cleaning is a fixed point: re-applying it to cleaned text is a no-op.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = charFilterPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// deriveFeatures computes the lightweight lexical signals for a review.
// HasUppercase is taken from the raw text since cleaning lowercases.
func deriveFeatures(raw string, cleaned string, words []string) core.DerivedFeatures {
	var totalLen int
	for _, w := range words {
		totalLen += len(w)
	}
	var avgLen float64
	if len(words) > 0 {
		avgLen = float64(totalLen) / float64(len(words))
	}

	sentences := 0
	for _, s := range sentenceSplit.Split(cleaned, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	return core.DerivedFeatures{
		AvgWordLength:  avgLen,
		SentenceCount:  sentences,
		HasQuestion:    strings.Contains(cleaned, "?"),
		HasExclamation: strings.Contains(cleaned, "!"),
		HasUppercase:   strings.IndexFunc(raw, unicode.IsUpper) >= 0,
		HasNumbers:     strings.IndexFunc(cleaned, unicode.IsDigit) >= 0,
	}
}

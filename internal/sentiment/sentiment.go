package sentiment

import (
	"reviewlens/internal/core"

	"github.com/jonreiter/govader"
)

// Mode selects the scoring strategy. The choice is made once at startup,
// not rediscovered per call.
type Mode string

const (
	// ModeVADER scores text with the VADER lexicon.
	ModeVADER Mode = "vader"
	// ModeNeutral is the degraded fallback: every text scores neutral.
	ModeNeutral Mode = "neutral"
)

// Scorer produces polarity and subjectivity signals for a piece of text.
// Implementations never fail; a text that cannot be scored is neutral.
type Scorer interface {
	Score(text string) core.Sentiment
}

// NewScorer returns the scorer for the given mode. Unknown modes fall back
// to the neutral scorer rather than erroring.
func NewScorer(mode Mode) Scorer {
	if mode == ModeVADER {
		return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
	}
	return neutralScorer{}
}

// vaderScorer scores text with govader's sentiment intensity analyzer.
type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (s *vaderScorer) Score(text string) core.Sentiment {
	if text == "" {
		return core.Sentiment{}
	}

	scores := s.analyzer.PolarityScores(text)

	// Compound is already normalized to [-1, 1]. Subjectivity is the share
	// of the text carrying any sentiment at all: everything that is not
	// neutral.
	subjectivity := scores.Positive + scores.Negative
	if subjectivity > 1 {
		subjectivity = 1
	}
	if subjectivity < 0 {
		subjectivity = 0
	}

	return core.Sentiment{
		Polarity:     scores.Compound,
		Subjectivity: subjectivity,
	}
}

// neutralScorer is the no-lexicon fallback. It returns neutral scores for
// every input and never errors.
type neutralScorer struct{}

func (neutralScorer) Score(string) core.Sentiment {
	return core.Sentiment{}
}

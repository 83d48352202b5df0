package sentiment

import "testing"

func TestVADERScoresPositiveText(t *testing.T) {
	scorer := NewScorer(ModeVADER)

	got := scorer.Score("i love this app, it is great and works wonderfully")
	if got.Polarity <= 0 {
		t.Errorf("expected positive polarity, got %f", got.Polarity)
	}
	if got.Subjectivity <= 0 || got.Subjectivity > 1 {
		t.Errorf("subjectivity out of range: %f", got.Subjectivity)
	}
}

func TestVADERScoresNegativeText(t *testing.T) {
	scorer := NewScorer(ModeVADER)

	got := scorer.Score("terrible app, it crashes constantly and i hate it")
	if got.Polarity >= 0 {
		t.Errorf("expected negative polarity, got %f", got.Polarity)
	}
}

func TestVADERScoresEmptyTextNeutral(t *testing.T) {
	scorer := NewScorer(ModeVADER)

	got := scorer.Score("")
	if got.Polarity != 0 || got.Subjectivity != 0 {
		t.Errorf("expected neutral sentiment for empty text, got %+v", got)
	}
}

func TestNeutralScorerAlwaysReturnsZero(t *testing.T) {
	scorer := NewScorer(ModeNeutral)

	for _, text := range []string{"", "i love this", "i hate this"} {
		got := scorer.Score(text)
		if got.Polarity != 0 || got.Subjectivity != 0 {
			t.Errorf("Score(%q) = %+v, want neutral", text, got)
		}
	}
}

func TestUnknownModeFallsBackToNeutral(t *testing.T) {
	scorer := NewScorer(Mode("bogus"))

	if got := scorer.Score("i love this app"); got.Polarity != 0 {
		t.Errorf("expected neutral fallback scorer, got %+v", got)
	}
}

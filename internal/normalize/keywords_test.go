package normalize

import (
	"reflect"
	"testing"
)

func TestFullKeyworderFiltersAndLemmatizes(t *testing.T) {
	keyworder := NewKeyworder(KeywordsFull)

	got := keyworder.Extract("the crashes happen with those notifications and ads123 too")
	want := []string{"crash", "happen", "notification"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestFullKeyworderCapsAtTen(t *testing.T) {
	keyworder := NewKeyworder(KeywordsFull)

	text := "alpha bravo charlie delta echelon foxtrot golfing hotel india juliet kilogram lima mike"
	if got := keyworder.Extract(text); len(got) != 10 {
		t.Errorf("expected 10 keywords, got %d: %v", len(got), got)
	}
}

func TestBasicKeyworderKeepsStopWords(t *testing.T) {
	keyworder := NewKeyworder(KeywordsBasic)

	got := keyworder.Extract("this crashes with notifications")
	want := []string{"this", "crashes", "with", "notifications"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestUnknownModeFallsBackToBasic(t *testing.T) {
	keyworder := NewKeyworder(KeywordMode("bogus"))

	got := keyworder.Extract("these crashes again")
	want := []string{"these", "crashes", "again"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestLemmatize(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"classes", "class"},
		{"categories", "category"},
		{"boxes", "box"},
		{"quizzes", "quizz"},
		{"matches", "match"},
		{"crashes", "crash"},
		{"glass", "glass"},
		{"status", "status"},
		{"analysis", "analysis"},
		{"apps", "app"},
		{"design", "design"},
	}

	for _, tt := range tests {
		if got := lemmatize(tt.token); got != tt.want {
			t.Errorf("lemmatize(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

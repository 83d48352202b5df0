package llm

import (
	"strings"
	"testing"

	"reviewlens/internal/core"
)

func TestBuildRequestNumbersReviewsAcrossClusters(t *testing.T) {
	bundle := core.AnalysisBundle{
		Category:     "productivity",
		TotalReviews: 3,
		ClusterSummaries: []core.ClusterSummary{
			{ClusterID: 0, RepresentativeSamples: []core.RepresentativeSample{
				{Text: "great app love it"},
				{Text: "love the interface"},
			}},
			{ClusterID: 1, RepresentativeSamples: []core.RepresentativeSample{
				{Text: "terrible crashes constantly"},
			}},
		},
	}

	prompt := BuildRequest(bundle)

	for _, want := range []string{
		`Review 1: "great app love it"`,
		`Review 2: "love the interface"`,
		`Review 3: "terrible crashes constantly"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Review 4") {
		t.Error("prompt numbers more reviews than were provided")
	}
	if !strings.Contains(prompt, "productivity") {
		t.Error("prompt missing app category")
	}
	for _, marker := range []string{InsightsMarker, RecommendationsMarker, SummaryMarker} {
		if !strings.Contains(prompt, marker) {
			t.Errorf("prompt missing section marker %q", marker)
		}
	}
}

func TestParseResponseAllSections(t *testing.T) {
	response := InsightsMarker + "\n" +
		"Users praise the interface.\n" +
		"Crashes dominate complaints.\n\n" +
		RecommendationsMarker + "\n" +
		"Fix crash on startup (High).\n\n" +
		SummaryMarker + "\n" +
		"Overall sentiment is mixed.\n"

	sections := ParseResponse(response)

	if want := "Users praise the interface.\nCrashes dominate complaints."; sections.Insights != want {
		t.Errorf("insights = %q, want %q", sections.Insights, want)
	}
	if want := "Fix crash on startup (High)."; sections.Recommendations != want {
		t.Errorf("recommendations = %q, want %q", sections.Recommendations, want)
	}
	if want := "Overall sentiment is mixed."; sections.Summary != want {
		t.Errorf("summary = %q, want %q", sections.Summary, want)
	}
}

func TestParseResponsePlainMarkers(t *testing.T) {
	// Markers without the emoji decoration still open their sections.
	response := "## RECOMMENDATIONS\nImprove onboarding\nReduce signup friction\n"

	sections := ParseResponse(response)

	if want := "Improve onboarding\nReduce signup friction"; sections.Recommendations != want {
		t.Errorf("recommendations = %q, want %q", sections.Recommendations, want)
	}
	if sections.Insights != "" || sections.Summary != "" {
		t.Errorf("unexpected content in other sections: %+v", sections)
	}
}

func TestParseResponseNoMarkersFallsBackToInsights(t *testing.T) {
	response := "The app generally works well.\nSome users report slow loading."

	sections := ParseResponse(response)

	if sections.Insights != response {
		t.Errorf("insights = %q, want the full response", sections.Insights)
	}
	if sections.Recommendations != "" || sections.Summary != "" {
		t.Errorf("unexpected content in other sections: %+v", sections)
	}
}

func TestParseResponseIgnoresTextBeforeFirstMarker(t *testing.T) {
	response := "Here is my analysis.\n\n" +
		InsightsMarker + "\n" +
		"Navigation confuses new users.\n"

	sections := ParseResponse(response)

	if want := "Navigation confuses new users."; sections.Insights != want {
		t.Errorf("insights = %q, want %q", sections.Insights, want)
	}
}

func TestParseResponseSectionsInAnyOrder(t *testing.T) {
	response := SummaryMarker + "\nSummary first.\n" +
		InsightsMarker + "\nInsights second.\n" +
		RecommendationsMarker + "\nRecommendations last.\n"

	sections := ParseResponse(response)

	if sections.Summary != "Summary first." {
		t.Errorf("summary = %q", sections.Summary)
	}
	if sections.Insights != "Insights second." {
		t.Errorf("insights = %q", sections.Insights)
	}
	if sections.Recommendations != "Recommendations last." {
		t.Errorf("recommendations = %q", sections.Recommendations)
	}
}

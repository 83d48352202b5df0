package llm

import (
	"fmt"
	"strings"

	"reviewlens/internal/core"
)

// Section markers the generation collaborator is instructed to emit.
const (
	InsightsMarker        = "## 💡 UX INSIGHTS"
	RecommendationsMarker = "## 🎯 UX RECOMMENDATIONS"
	SummaryMarker         = "## 📋 EXECUTIVE SUMMARY"
)

// BuildRequest renders an analysis bundle into the text request for the
// generation collaborator. Representative reviews are numbered
// sequentially across all clusters; cluster boundaries are deliberately
// not disclosed so the generated output stays free of internal-process
// references.
func BuildRequest(bundle core.AnalysisBundle) string {
	var feedback strings.Builder
	counter := 1
	for _, summary := range bundle.ClusterSummaries {
		for _, sample := range summary.RepresentativeSamples {
			feedback.WriteString(fmt.Sprintf("Review %d: %q\n", counter, sample.Text))
			counter++
		}
	}

	return fmt.Sprintf(`You are a senior UX analyst conducting a comprehensive analysis of %s app user feedback. Analyze the following user feedback data and provide actionable UX insights.

CRITICAL INSTRUCTIONS:
- Focus on USER EXPERIENCE patterns and insights
- ONLY analyze what is explicitly stated in the provided user feedback
- DO NOT make assumptions, inferences, or conclusions beyond what users have written
- DO NOT mention clusters, groups, or technical analysis methods in your response

OVERALL DATA:
- App Category: %s
- Total user reviews analyzed: %d

USER FEEDBACK DATA:
%s
Please provide a comprehensive UX analysis in the following format:

%s
[3-5 key insights about user experience patterns, common UX issues, and positive feedback, based only on what users explicitly stated.]

%s
[5-7 specific, actionable UX recommendations with priority levels (High/Medium/Low), based only on the explicit user feedback.]

%s
[A 2-3 paragraph executive summary of the key UX findings and most important recommendations.]

IMPORTANT:
- Every insight and recommendation must be directly supported by the provided user feedback
- Do not reference technical analysis methods, clusters, groups, or data processing
- Present insights as general patterns and trends without technical references`,
		bundle.Category, bundle.Category, bundle.TotalReviews, feedback.String(),
		InsightsMarker, RecommendationsMarker, SummaryMarker)
}

// ParseResponse splits the collaborator's free-text reply into the three
// named sections. A line starting with "##" and containing one of the
// section keywords opens that section, in any order; following non-empty
// lines accumulate until the next marker or end of text. When no marker is
// recognized at all, the entire response is surfaced as insights rather
// than discarded.
func ParseResponse(text string) core.InsightSections {
	var insights, recommendations, summary strings.Builder
	var current *strings.Builder

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if marker := sectionFor(line); marker != nil {
			current = marker(&insights, &recommendations, &summary)
			continue
		}
		if current != nil && line != "" {
			current.WriteString(line)
			current.WriteString("\n")
		}
	}

	sections := core.InsightSections{
		Insights:        strings.TrimSpace(insights.String()),
		Recommendations: strings.TrimSpace(recommendations.String()),
		Summary:         strings.TrimSpace(summary.String()),
	}

	if sections.Insights == "" && sections.Recommendations == "" && sections.Summary == "" {
		sections.Insights = text
	}

	return sections
}

// sectionFor maps a marker line to a selector for its section builder.
// Non-marker lines map to nil.
func sectionFor(line string) func(i, r, s *strings.Builder) *strings.Builder {
	if !strings.HasPrefix(line, "##") {
		return nil
	}
	switch {
	case strings.Contains(line, "INSIGHTS"):
		return func(i, _, _ *strings.Builder) *strings.Builder { return i }
	case strings.Contains(line, "RECOMMENDATIONS"):
		return func(_, r, _ *strings.Builder) *strings.Builder { return r }
	case strings.Contains(line, "SUMMARY"):
		return func(_, _, s *strings.Builder) *strings.Builder { return s }
	}
	return nil
}

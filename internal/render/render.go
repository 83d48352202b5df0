// Package render formats a completed analysis run as a markdown report.
package render

import (
	"fmt"
	"strings"

	"reviewlens/internal/core"
)

// RunReport renders the full markdown report for an analysis run.
func RunReport(run *core.AnalysisRun) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# UX Analysis: %s\n\n", run.Category))
	b.WriteString(fmt.Sprintf("Generated %s with %s\n\n",
		run.DateGenerated.Format("2006-01-02 15:04 MST"), run.ModelUsed))

	b.WriteString("## Overview\n\n")
	b.WriteString(fmt.Sprintf("- Reviews submitted: %d\n", run.SubmittedReviews))
	b.WriteString(fmt.Sprintf("- Reviews analyzed: %d\n", run.SurvivedReviews))
	b.WriteString(fmt.Sprintf("- Reviews dropped in cleaning: %d\n", run.DroppedReviews))
	b.WriteString(fmt.Sprintf("- Feedback groups: %d\n\n", run.Bundle.ClusterStatistics.TotalClusters))

	b.WriteString("## Feedback Groups\n\n")
	b.WriteString("| Group | Size | Avg Rating | Avg Polarity | Top Keywords |\n")
	b.WriteString("|-------|------|------------|--------------|--------------|\n")
	for _, summary := range run.Bundle.ClusterSummaries {
		b.WriteString(fmt.Sprintf("| %d | %d | %.1f | %+.2f | %s |\n",
			summary.ClusterID, summary.Size, summary.AvgRating, summary.AvgPolarity,
			keywordList(summary.TopKeywords, 5)))
	}
	b.WriteString("\n")

	writeSection(&b, "Insights", run.Sections.Insights)
	writeSection(&b, "Recommendations", run.Sections.Recommendations)
	writeSection(&b, "Executive Summary", run.Sections.Summary)

	return b.String()
}

func writeSection(b *strings.Builder, title, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	b.WriteString(fmt.Sprintf("## %s\n\n", title))
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n\n")
}

func keywordList(keywords []core.KeywordCount, limit int) string {
	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		parts[i] = kw.Keyword
	}
	return strings.Join(parts, ", ")
}

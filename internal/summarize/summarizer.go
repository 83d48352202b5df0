// Package summarize turns clusters and their member reviews into the
// bounded, text-only summaries handed to downstream consumers.
package summarize

import (
	"log/slog"

	"reviewlens/internal/core"
	"reviewlens/internal/logger"
)

const (
	maxTopKeywords       = 10
	maxSamplesPerCluster = 10
)

// Summarizer computes per-cluster summaries and aggregate statistics.
// Cluster member indices and the reviews slice must share the same row
// order; that alignment is part of the clustering engine's contract.
type Summarizer struct {
	log *slog.Logger
}

// NewSummarizer creates a Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{log: logger.Get()}
}

// Summarize builds one ClusterSummary per populated cluster, in cluster-ID
// order. Representative samples are the first ten member reviews in
// original order, reduced to text only. A cluster with zero members is
// skipped rather than emitted as an empty summary.
func (s *Summarizer) Summarize(clusters []core.Cluster, reviews []core.NormalizedReview) []core.ClusterSummary {
	summaries := make([]core.ClusterSummary, 0, len(clusters))

	for _, cluster := range clusters {
		if len(cluster.MemberIndices) == 0 {
			s.log.Warn("skipping empty cluster", "cluster_id", cluster.ID)
			continue
		}

		samples := make([]core.RepresentativeSample, 0, maxSamplesPerCluster)
		var ratingSum, polaritySum float64
		for _, idx := range cluster.MemberIndices {
			review := reviews[idx]
			ratingSum += float64(review.Rating)
			polaritySum += review.Sentiment.Polarity
			if len(samples) < maxSamplesPerCluster {
				samples = append(samples, core.RepresentativeSample{Text: review.CleanedText})
			}
		}

		size := len(cluster.MemberIndices)
		summaries = append(summaries, core.ClusterSummary{
			ClusterID:             cluster.ID,
			Size:                  size,
			TopKeywords:           topKeywords(cluster, reviews),
			RepresentativeSamples: samples,
			AvgRating:             ratingSum / float64(size),
			AvgPolarity:           polaritySum / float64(size),
		})
	}

	return summaries
}

// Statistics aggregates cluster-level metrics: cluster count, the size of
// each cluster, and the per-cluster keyword frequency tables.
func (s *Summarizer) Statistics(clusters []core.Cluster, reviews []core.NormalizedReview) core.ClusterStatistics {
	stats := core.ClusterStatistics{
		TotalClusters:   len(clusters),
		ClusterSizes:    make([]int, 0, len(clusters)),
		ClusterKeywords: make(map[int][]core.KeywordCount, len(clusters)),
	}

	for _, cluster := range clusters {
		stats.ClusterSizes = append(stats.ClusterSizes, len(cluster.MemberIndices))
		stats.ClusterKeywords[cluster.ID] = topKeywords(cluster, reviews)
	}

	return stats
}

// topKeywords counts every member review's extracted keywords and returns
// the ten most frequent, ties broken by first-seen order.
func topKeywords(cluster core.Cluster, reviews []core.NormalizedReview) []core.KeywordCount {
	counts := make(map[string]int)
	var order []string

	for _, idx := range cluster.MemberIndices {
		for _, keyword := range reviews[idx].Keywords {
			if _, seen := counts[keyword]; !seen {
				order = append(order, keyword)
			}
			counts[keyword]++
		}
	}

	// Stable selection sort over the first-seen order keeps ties in
	// first-seen position.
	top := make([]core.KeywordCount, 0, maxTopKeywords)
	used := make(map[string]bool, maxTopKeywords)
	for len(top) < maxTopKeywords && len(top) < len(order) {
		best := ""
		bestCount := -1
		for _, keyword := range order {
			if used[keyword] {
				continue
			}
			if counts[keyword] > bestCount {
				best = keyword
				bestCount = counts[keyword]
			}
		}
		used[best] = true
		top = append(top, core.KeywordCount{Keyword: best, Count: bestCount})
	}

	return top
}

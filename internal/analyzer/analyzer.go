// Package analyzer wires the pipeline end to end: normalization, feature
// extraction, clustering, summarization, and the generation hand-off.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reviewlens/internal/clustering"
	"reviewlens/internal/config"
	"reviewlens/internal/core"
	"reviewlens/internal/features"
	"reviewlens/internal/llm"
	"reviewlens/internal/logger"
	"reviewlens/internal/normalize"
	"reviewlens/internal/summarize"
)

// Analyzer runs the review-analysis pipeline for one category at a time.
// It holds no state across invocations; every call depends only on its
// inputs and the configuration supplied at construction, so independent
// categories can be analyzed concurrently with separate instances.
type Analyzer struct {
	cfg        *config.Config
	normalizer *normalize.Normalizer
	vectorizer *features.Vectorizer
	engine     *clustering.Engine
	summarizer *summarize.Summarizer
	generator  llm.Generator
	log        *slog.Logger
}

// New creates an Analyzer from configuration and a generation client.
func New(cfg *config.Config, generator llm.Generator) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		normalizer: normalize.NewNormalizer(cfg.Processing),
		vectorizer: features.NewVectorizer(cfg.Features),
		engine:     clustering.NewEngine(cfg.Clustering),
		summarizer: summarize.NewSummarizer(),
		generator:  generator,
		log:        logger.Get(),
	}
}

// Prepare runs the pure part of the pipeline (normalize, vectorize,
// cluster, summarize) and returns the bundle plus the surviving reviews.
// No I/O happens here.
func (a *Analyzer) Prepare(category string, reviews []core.RawReview) (*core.AnalysisBundle, []core.NormalizedReview, error) {
	a.log.Info("processing reviews", "category", category, "submitted", len(reviews))

	normalized := a.normalizer.Normalize(reviews)

	texts := make([]string, len(normalized))
	for i, review := range normalized {
		texts[i] = review.CleanedText
	}

	matrix, err := a.vectorizer.Vectorize(texts)
	if err != nil {
		return nil, nil, fmt.Errorf("feature extraction failed: %w", err)
	}

	k := a.cfg.Clustering.NumClusters
	clusters, _, err := a.engine.Cluster(matrix.Data(), k)
	if err != nil {
		return nil, nil, fmt.Errorf("clustering failed: %w", err)
	}

	bundle := &core.AnalysisBundle{
		Category:          category,
		TotalReviews:      len(normalized),
		ClusterSummaries:  a.summarizer.Summarize(clusters, normalized),
		ClusterStatistics: a.summarizer.Statistics(clusters, normalized),
	}

	a.log.Info("clustering complete",
		"category", category, "survived", len(normalized), "clusters", len(bundle.ClusterSummaries))

	return bundle, normalized, nil
}

// AnalyzeCategory runs the full pipeline including the generation
// hand-off and returns the completed run. Generation errors propagate
// unchanged; the pipeline neither retries nor papers over them.
func (a *Analyzer) AnalyzeCategory(ctx context.Context, category string, reviews []core.RawReview) (*core.AnalysisRun, error) {
	bundle, normalized, err := a.Prepare(category, reviews)
	if err != nil {
		return nil, err
	}

	prompt := llm.BuildRequest(*bundle)
	a.log.Debug("generation request built", "category", category, "prompt_chars", len(prompt))

	response, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("insight generation failed: %w", err)
	}

	run := &core.AnalysisRun{
		ID:               uuid.NewString(),
		Category:         category,
		SubmittedReviews: len(reviews),
		SurvivedReviews:  len(normalized),
		DroppedReviews:   len(reviews) - len(normalized),
		Bundle:           *bundle,
		Sections:         llm.ParseResponse(response),
		ModelUsed:        a.generator.Model(),
		DateGenerated:    time.Now().UTC(),
	}

	a.log.Info("analysis complete", "category", category, "run_id", run.ID)

	return run, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"reviewlens/internal/analyzer"
	"reviewlens/internal/config"
	"reviewlens/internal/core"
	"reviewlens/internal/llm"
	"reviewlens/internal/logger"
	"reviewlens/internal/render"
	"reviewlens/internal/store"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var (
		inputFile string
		category  string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a batch of reviews and generate a UX report",
		Long: `Reads a JSON array of raw review records, runs the normalization,
clustering, and insight-generation pipeline for the given app category,
persists the run, and writes a markdown report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(inputFile, category, outputDir)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to JSON file with raw reviews (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "app category being analyzed (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "report output directory (default from config)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runAnalyze(inputFile, category, outputDir string) error {
	cfg := config.Get()

	reviews, err := loadReviews(inputFile)
	if err != nil {
		return err
	}
	logger.Info("loaded reviews", "file", inputFile, "count", len(reviews))

	client, err := llm.NewClient(cfg.AI.Gemini)
	if err != nil {
		return err
	}

	// Generation is the only externally-suspending step; the timeout for
	// it lives here at the boundary, not inside the pipeline.
	timeout, err := time.ParseDuration(cfg.AI.Gemini.Timeout)
	if err != nil {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	run, err := analyzer.New(cfg, client).AnalyzeCategory(ctx, category, reviews)
	if err != nil {
		return err
	}

	if st, err := store.NewStore(cfg.App.DataDir); err != nil {
		logger.Warn("run persistence unavailable", "error", err.Error())
	} else {
		defer st.Close()
		if err := st.SaveRun(run); err != nil {
			logger.Warn("failed to persist run", "run_id", run.ID, "error", err.Error())
		}
	}

	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}
	reportPath, err := writeReport(run, outputDir)
	if err != nil {
		return err
	}

	fmt.Printf("Analysis complete: %d/%d reviews across %d groups\n",
		run.SurvivedReviews, run.SubmittedReviews, run.Bundle.ClusterStatistics.TotalClusters)
	fmt.Printf("Report written to %s\n", reportPath)
	return nil
}

// loadReviews reads a JSON array of raw review records from the boundary
// format produced by the scraping collaborator.
func loadReviews(path string) ([]core.RawReview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews file %s: %w", path, err)
	}

	var reviews []core.RawReview
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("failed to parse reviews file %s: %w", path, err)
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("reviews file %s contains no reviews", path)
	}

	return reviews, nil
}

func writeReport(run *core.AnalysisRun, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("ux_%s_%s.md", run.Category, run.DateGenerated.Format("2006-01-02"))
	path := filepath.Join(outputDir, name)

	if err := os.WriteFile(path, []byte(render.RunReport(run)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

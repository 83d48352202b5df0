package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Processing.MinReviewLength != 20 || cfg.Processing.MaxReviewLength != 1000 {
		t.Errorf("unexpected length bounds: [%d, %d]", cfg.Processing.MinReviewLength, cfg.Processing.MaxReviewLength)
	}
	if cfg.Processing.MinWordCount != 3 {
		t.Errorf("min_word_count = %d, want 3", cfg.Processing.MinWordCount)
	}
	if cfg.Processing.Keywords != "full" || cfg.Processing.Sentiment != "vader" {
		t.Errorf("unexpected strategy defaults: %q/%q", cfg.Processing.Keywords, cfg.Processing.Sentiment)
	}
	if cfg.Features.MaxFeatures != 1500 || cfg.Features.NGramMin != 1 || cfg.Features.NGramMax != 3 {
		t.Errorf("unexpected feature defaults: %+v", cfg.Features)
	}
	if cfg.Features.MinDocFreq != 2 || cfg.Features.MaxDocRatio != 0.95 {
		t.Errorf("unexpected pruning defaults: %+v", cfg.Features)
	}
	if cfg.Clustering.NumClusters != 8 || cfg.Clustering.Seed != 42 || cfg.Clustering.Restarts != 10 {
		t.Errorf("unexpected clustering defaults: %+v", cfg.Clustering)
	}
	if cfg.Clustering.MaxIterations != 300 {
		t.Errorf("max_iterations = %d, want 300", cfg.Clustering.MaxIterations)
	}
	if cfg.AI.Gemini.Model != "gemini-flash-lite-latest" {
		t.Errorf("model = %q", cfg.AI.Gemini.Model)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("clustering:\n  n_clusters: 4\nprocessing:\n  sentiment: neutral\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Clustering.NumClusters != 4 {
		t.Errorf("n_clusters = %d, want 4", cfg.Clustering.NumClusters)
	}
	if cfg.Processing.Sentiment != "neutral" {
		t.Errorf("sentiment = %q, want neutral", cfg.Processing.Sentiment)
	}
	// Untouched keys keep their defaults.
	if cfg.Clustering.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Clustering.Seed)
	}
}

func TestLoadIsMemoized(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load("")
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	second, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if first != second {
		t.Error("expected Load to return the same config instance")
	}
}

func TestValidateConfigRejectsBrokenShapes(t *testing.T) {
	valid := Config{
		Processing: Processing{MinReviewLength: 20, MaxReviewLength: 1000},
		Features:   Features{MaxFeatures: 1500, NGramMin: 1, NGramMax: 3},
		Clustering: Clustering{NumClusters: 8, Restarts: 10},
	}

	if err := validateConfig(&valid); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative min length", func(c *Config) { c.Processing.MinReviewLength = -1 }},
		{"max below min", func(c *Config) { c.Processing.MaxReviewLength = 10 }},
		{"zero max features", func(c *Config) { c.Features.MaxFeatures = 0 }},
		{"inverted ngram range", func(c *Config) { c.Features.NGramMin = 3; c.Features.NGramMax = 1 }},
		{"zero clusters", func(c *Config) { c.Clustering.NumClusters = 0 }},
		{"zero restarts", func(c *Config) { c.Clustering.Restarts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := validateConfig(&cfg); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

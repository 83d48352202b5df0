package core

import "time"

// RawReview is a single user-submitted feedback item as delivered by the
// scraping collaborator. It is the source of truth and is never mutated.
type RawReview struct {
	ID           string `json:"review_id"`     // Store-assigned review identifier
	Text         string `json:"text"`          // Raw review text as written by the user
	Rating       int    `json:"rating"`        // Star rating, 1-5
	Author       string `json:"author"`        // Display name of the reviewer
	Date         string `json:"date"`          // Review date as reported by the store
	Platform     string `json:"platform"`      // Originating platform (e.g., "google_play")
	AppID        string `json:"app_id"`        // Identifier of the reviewed app
	HelpfulCount int    `json:"helpful_count"` // Number of helpful/thumbs-up votes
	ReplyText    string `json:"reply_text"`    // Developer reply, if any
}

// Sentiment holds the lexical sentiment signals extracted for a review.
type Sentiment struct {
	Polarity     float64 `json:"polarity"`     // Sentiment polarity in [-1, 1]
	Subjectivity float64 `json:"subjectivity"` // Subjectivity in [0, 1]
}

// DerivedFeatures holds lightweight lexical signals computed per review.
type DerivedFeatures struct {
	AvgWordLength  float64 `json:"avg_word_length"` // Mean length of cleaned-text words
	SentenceCount  int     `json:"sentence_count"`  // Number of sentences in the cleaned text
	HasQuestion    bool    `json:"has_question"`    // Cleaned text contains a question mark
	HasExclamation bool    `json:"has_exclamation"` // Cleaned text contains an exclamation mark
	HasUppercase   bool    `json:"has_uppercase"`   // Raw text contains uppercase letters
	HasNumbers     bool    `json:"has_numbers"`     // Cleaned text contains digits
}

// NormalizedReview is a RawReview that survived validation and cleaning,
// enriched with the signals the rest of the pipeline consumes.
type NormalizedReview struct {
	RawReview
	CleanedText     string          `json:"cleaned_text"`     // Text after the fixed cleaning sequence
	TextLength      int             `json:"text_length"`      // Length of CleanedText in bytes
	WordCount       int             `json:"word_count"`       // Number of whitespace-separated words
	Keywords        []string        `json:"keywords"`         // Up to 10 extracted keywords, in token order
	Sentiment       Sentiment       `json:"sentiment"`        // Polarity and subjectivity scores
	LanguageCode    string          `json:"language_code"`    // Detected language ("en" or "es")
	DerivedFeatures DerivedFeatures `json:"derived_features"` // Lexical signals
}

// Cluster is one group produced by the clustering engine. MemberIndices
// index into the normalized-review sequence the engine was run against;
// that index alignment is an explicit contract between the engine and the
// summarizer.
type Cluster struct {
	ID            int   `json:"cluster_id"`     // Compact cluster label, 0-based
	MemberIndices []int `json:"member_indices"` // Row indices of member reviews, ascending
	Size          int   `json:"size"`           // Number of members
}

// KeywordCount is one entry of an ordered keyword frequency table.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// RepresentativeSample is a member review reduced to text only before it
// crosses into the external generation step.
type RepresentativeSample struct {
	Text string `json:"text"`
}

// ClusterSummary is the per-cluster digest handed to downstream consumers.
// It is derived data, recomputed on every analysis run.
type ClusterSummary struct {
	ClusterID             int                    `json:"cluster_id"`
	Size                  int                    `json:"size"`
	TopKeywords           []KeywordCount         `json:"top_keywords"`           // Top 10 member keywords, ties by first-seen order
	RepresentativeSamples []RepresentativeSample `json:"representative_samples"` // First 10 members in original order, text only
	AvgRating             float64                `json:"avg_rating"`             // Mean star rating of members
	AvgPolarity           float64                `json:"avg_polarity"`           // Mean sentiment polarity of members
}

// ClusterStatistics aggregates cluster-level metrics for an analysis run.
type ClusterStatistics struct {
	TotalClusters   int                    `json:"total_clusters"`
	ClusterSizes    []int                  `json:"cluster_sizes"`
	ClusterKeywords map[int][]KeywordCount `json:"cluster_keywords"` // Cluster ID -> top-10 keyword table
}

// AnalysisBundle is the full structured output of the clustering stage,
// and the only thing the generation step ever sees.
type AnalysisBundle struct {
	Category          string            `json:"category"`
	TotalReviews      int               `json:"total_reviews"` // Reviews that survived normalization
	ClusterSummaries  []ClusterSummary  `json:"cluster_summaries"`
	ClusterStatistics ClusterStatistics `json:"cluster_statistics"`
}

// InsightSections is the generation collaborator's reply split into its
// three named sections.
type InsightSections struct {
	Insights        string `json:"insights"`
	Recommendations string `json:"recommendations"`
	Summary         string `json:"summary"`
}

// AnalysisRun is the complete result of one analysis invocation.
type AnalysisRun struct {
	ID               string          `json:"id"`                // Unique run identifier
	Category         string          `json:"category"`          // App category analyzed
	SubmittedReviews int             `json:"submitted_reviews"` // Raw reviews received
	SurvivedReviews  int             `json:"survived_reviews"`  // Reviews that passed normalization
	DroppedReviews   int             `json:"dropped_reviews"`   // Reviews lost to validation/cleaning
	Bundle           AnalysisBundle  `json:"bundle"`            // Structured clustering output
	Sections         InsightSections `json:"sections"`          // Parsed generation output
	ModelUsed        string          `json:"model_used"`        // Generation model identifier
	DateGenerated    time.Time       `json:"date_generated"`    // When the run completed
}

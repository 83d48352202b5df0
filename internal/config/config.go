package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        App        `mapstructure:"app"`
	Processing Processing `mapstructure:"processing"`
	Features   Features   `mapstructure:"features"`
	Clustering Clustering `mapstructure:"clustering"`
	AI         AI         `mapstructure:"ai"`
	Output     Output     `mapstructure:"output"`
	Logging    Logging    `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug   bool   `mapstructure:"debug"`
	DataDir string `mapstructure:"data_dir"`
}

// Processing holds review validation and normalization configuration
type Processing struct {
	MinReviewLength int    `mapstructure:"min_review_length"` // Reviews shorter than this (raw or cleaned) are dropped
	MaxReviewLength int    `mapstructure:"max_review_length"` // Reviews longer than this are dropped
	MinWordCount    int    `mapstructure:"min_word_count"`    // Cleaned reviews with fewer words are dropped
	Keywords        string `mapstructure:"keywords"`          // Keyword extraction mode: "full" or "basic"
	Sentiment       string `mapstructure:"sentiment"`         // Sentiment mode: "vader" or "neutral"
}

// Features holds feature-space (vectorization) configuration
type Features struct {
	MaxFeatures int     `mapstructure:"max_features"`  // Vocabulary size bound
	NGramMin    int     `mapstructure:"ngram_min"`     // Smallest n-gram order
	NGramMax    int     `mapstructure:"ngram_max"`     // Largest n-gram order
	MinDocFreq  int     `mapstructure:"min_doc_freq"`  // Terms in fewer documents are excluded
	MaxDocRatio float64 `mapstructure:"max_doc_ratio"` // Terms in more than this fraction of documents are excluded
}

// Clustering holds cluster-engine configuration
type Clustering struct {
	NumClusters   int   `mapstructure:"n_clusters"`     // Requested number of clusters
	MaxIterations int   `mapstructure:"max_iterations"` // Iteration cap per k-means run
	Restarts      int   `mapstructure:"restarts"`       // Independent seeded runs, lowest inertia wins
	Seed          int64 `mapstructure:"seed"`           // Base RNG seed
}

// AI holds LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Output holds output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from file, environment, and defaults.
// Missing keys always resolve to defaults, never to an error.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".reviewlens")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the global configuration so the next Load starts fresh.
// Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.data_dir", ".reviewlens-cache")

	// Processing defaults
	viper.SetDefault("processing.min_review_length", 20)
	viper.SetDefault("processing.max_review_length", 1000)
	viper.SetDefault("processing.min_word_count", 3)
	viper.SetDefault("processing.keywords", "full")
	viper.SetDefault("processing.sentiment", "vader")

	// Feature-space defaults
	viper.SetDefault("features.max_features", 1500)
	viper.SetDefault("features.ngram_min", 1)
	viper.SetDefault("features.ngram_max", 3)
	viper.SetDefault("features.min_doc_freq", 2)
	viper.SetDefault("features.max_doc_ratio", 0.95)

	// Clustering defaults
	viper.SetDefault("clustering.n_clusters", 8)
	viper.SetDefault("clustering.max_iterations", 300)
	viper.SetDefault("clustering.restarts", 10)
	viper.SetDefault("clustering.seed", 42)

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("ai.gemini.timeout", "60s")
	viper.SetDefault("ai.gemini.max_tokens", 4096)
	viper.SetDefault("ai.gemini.temperature", 0.7)

	// Output defaults
	viper.SetDefault("output.directory", "reports")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
}

// bindEnvKeys binds a config key to multiple environment variable names
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			break
		}
	}
}

// validateConfig rejects configurations that would break the pipeline's
// shape. Content-level tuning is left to the components.
func validateConfig(config *Config) error {
	if config.Processing.MinReviewLength < 0 {
		return fmt.Errorf("processing.min_review_length must be >= 0")
	}
	if config.Processing.MaxReviewLength < config.Processing.MinReviewLength {
		return fmt.Errorf("processing.max_review_length must be >= processing.min_review_length")
	}
	if config.Features.MaxFeatures <= 0 {
		return fmt.Errorf("features.max_features must be > 0")
	}
	if config.Features.NGramMin < 1 || config.Features.NGramMax < config.Features.NGramMin {
		return fmt.Errorf("features.ngram range is invalid: [%d, %d]", config.Features.NGramMin, config.Features.NGramMax)
	}
	if config.Clustering.NumClusters <= 0 {
		return fmt.Errorf("clustering.n_clusters must be > 0")
	}
	if config.Clustering.Restarts <= 0 {
		return fmt.Errorf("clustering.restarts must be > 0")
	}
	return nil
}

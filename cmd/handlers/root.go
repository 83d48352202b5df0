package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reviewlens/internal/config"
	"reviewlens/internal/logger"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reviewlens",
		Short: "Reviewlens clusters app-store reviews and generates UX insights.",
		Long: `Reviewlens ingests raw app-store reviews, cleans and normalizes them,
groups similar feedback with TF-IDF features and k-means clustering, and
hands bounded cluster summaries to an LLM for UX insight generation.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reviewlens.yaml)")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewRunsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig loads configuration and initializes logging
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
}

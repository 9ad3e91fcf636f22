// Package main provides the resume-search CLI: an HTTP server and one-shot
// search and stats commands over a directory of plain-text resumes.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	corpusDir  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "resume-search",
	Short: "TF-IDF search over a directory of resumes",
	Long: `Indexes every .txt resume in a directory and ranks them against free-text
queries, with relevance feedback and typo-tolerant search.

Configuration is read from an optional YAML file (--config) and RS_*
environment variables. A .env file in the working directory is loaded first.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&corpusDir, "corpus-dir", "", "directory of resumes (overrides corpus.dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides logging.level)")

	rootCmd.AddCommand(serveCmd, searchCmd, statsCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

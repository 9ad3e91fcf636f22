package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/resumematcher/resume-search/services"
)

var (
	relevantDocs []string
	tolerant     bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Index the corpus and run one query",
	Long: `Loads the corpus, runs one query and prints the result as JSON.

  resume-search search python developer
  resume-search search --tolerant pythn dev*
  resume-search search --relevant a.txt,b.txt machine learning`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Index the corpus and print index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	searchCmd.Flags().StringSliceVar(&relevantDocs, "relevant", nil, "comma-separated IDs of relevant resumes (relevance feedback)")
	searchCmd.Flags().BoolVar(&tolerant, "tolerant", false, "correct misspellings and expand trailing-* wildcards")
	searchCmd.MarkFlagsMutuallyExclusive("relevant", "tolerant")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if _, err := a.searcher.Load(ctx, cfg.Corpus.Dir); err != nil {
		return err
	}

	query := strings.Join(args, " ")
	var result services.SearchResult
	switch {
	case tolerant:
		result, err = a.searcher.TolerantSearch(ctx, query)
	case len(relevantDocs) > 0:
		result, err = a.searcher.RefineSearch(ctx, query, relevantDocs)
	default:
		result, err = a.searcher.Search(ctx, query)
	}
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	stats, err := a.searcher.Load(cmd.Context(), cfg.Corpus.Dir)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), stats)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

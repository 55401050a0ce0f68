package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

var (
	runQueries []string
	runK       int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the corpus and run the sample queries",
	Long: `Fetches every topic of the corpus from Wikipedia, embeds the articles,
builds the vector index and runs a list of queries against it.

Without --query the built-in sample questions are used. Topics come from
--topics, ~/.semdex/corpus.yaml, or the built-in corpus, in that order.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringArrayVarP(&runQueries, "query", "q", nil, "query to run (repeatable)")
	runCmd.Flags().IntVarP(&runK, "k", "n", 0, "results per query (default from settings)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	corpus, err := loadTopics()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "FETCHING DOCUMENTS FROM WIKIPEDIA AND BUILDING THE DOCUMENT COLLECTION")
	if len(corpus.Searches) > 0 {
		fmt.Fprintln(out, "Fetching articles via search:")
	}
	printer := newProgressPrinter(out, corpus, !noColor && isTerminal(out))

	s, err := openSession(ctx, corpus, printer.Observe)
	if err != nil {
		return err
	}
	defer s.close()

	fmt.Fprintf(out, "\n\nTotal documents loaded: %d\n", s.report.Documents)
	if s.report.Skipped > 0 {
		fmt.Fprintf(out, "Skipped: %d\n", s.report.Skipped)
	}
	fmt.Fprintf(out, "Index ready: %d vectors (%d dimensions)\n", s.report.Documents, s.report.Dimension)

	queries := runQueries
	if len(queries) == 0 {
		queries = domain.SampleQueries()
	}
	k := runK
	if k == 0 {
		k = s.settings.Query.K
	}

	fmt.Fprintln(out, "\nRUNNING QUERIES")
	for _, q := range queries {
		fmt.Fprintf(out, "\nQ: %s\n", q)
		hits, err := s.corpus.Query(ctx, q, k)
		if err != nil {
			return fmt.Errorf("query %q failed: %w", q, err)
		}
		printHits(out, hits, s.settings.Query.PreviewLength)
	}

	return nil
}

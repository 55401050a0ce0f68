package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

var (
	queryK    int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the corpus",
	Long: `Builds the corpus and returns the documents nearest to the query text.

Distances are squared L2 distances between embeddings; smaller is closer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryK, "k", "n", 0, "number of results (default from settings)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

// jsonHit is the JSON shape of one query result.
type jsonHit struct {
	Rank     int     `json:"rank"`
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	URL      string  `json:"url"`
	Category string  `json:"category"`
	Distance float64 `json:"distance"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	ctx := cmd.Context()

	corpus, err := loadTopics()
	if err != nil {
		return err
	}

	var progress io.Writer = io.Discard
	if !queryJSON {
		progress = cmd.ErrOrStderr()
	}
	printer := newProgressPrinter(progress, corpus, false)

	s, err := openSession(ctx, corpus, printer.Observe)
	if err != nil {
		return err
	}
	defer s.close()

	k := queryK
	if k == 0 {
		k = s.settings.Query.K
	}

	hits, err := s.corpus.Query(ctx, text, k)
	if err != nil {
		return fmt.Errorf("query %q failed: %w", text, err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, hits, s.settings.Query.ContentLength)
	}

	out := cmd.OutOrStdout()
	if len(hits) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	fmt.Fprintf(out, "\nQ: %s\n", text)
	printHits(out, hits, s.settings.Query.PreviewLength)
	return nil
}

func outputQueryJSON(cmd *cobra.Command, hits []domain.Hit, contentLength int) error {
	out := make([]jsonHit, len(hits))
	for i, h := range hits {
		out[i] = jsonHit{
			Rank:     h.Rank,
			ID:       h.DocumentID,
			Title:    h.Document.Title,
			Content:  domain.Preview(h.Document.Content, contentLength),
			URL:      h.Document.URL,
			Category: h.Document.Category,
			Distance: h.Distance,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

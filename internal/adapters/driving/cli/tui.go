package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semdex/internal/adapters/driving/tui"
)

var errNotTerminal = errors.New("the tui command needs an interactive terminal")

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Build the corpus, then launch the interactive terminal user interface.

The TUI lets you type queries, browse the hits, open documents and list
every document in the built corpus.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Query / Open
  +/-      - More or fewer hits
  n        - New query
  Esc      - Back
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return errNotTerminal
	}

	corpus, err := loadTopics()
	if err != nil {
		return err
	}

	printer := newProgressPrinter(cmd.ErrOrStderr(), corpus, !noColor)
	s, err := openSession(cmd.Context(), corpus, printer.Observe)
	if err != nil {
		return err
	}
	defer s.close()

	app, err := tui.NewApp(tui.NewPorts(s.corpus, s.settings.Query.K, s.settings.Query.PreviewLength))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

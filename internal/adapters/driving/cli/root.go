// Package cli implements the semdex command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
	"github.com/custodia-labs/semdex/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	verbose    bool
	configPath string
	topicsPath string
	noColor    bool
)

// CorpusFactory creates an unbuilt corpus service for settings. progress
// observes every fetch outcome of the build. The returned function releases
// the service's resources.
type CorpusFactory func(
	ctx context.Context,
	settings *domain.AppSettings,
	progress func(domain.FetchOutcome),
) (driving.CorpusService, func(), error)

// Services bundles what the commands depend on.
type Services struct {
	// Settings reads and writes the config file.
	Settings driving.SettingsService

	// NewCorpus creates the pipeline used by run, query, tui and mcp.
	NewCorpus CorpusFactory

	// LoadTopics reads a YAML topic file. An empty path selects the
	// default topic file when it exists and the built-in corpus otherwise.
	LoadTopics func(path string) (domain.Corpus, error)

	// WriteTopics writes corpus to path (or the default topic file) and
	// returns the path written.
	WriteTopics func(path string, corpus domain.Corpus, overwrite bool) (string, error)

	// OpenCache opens the article cache named by settings. Optional.
	OpenCache func(settings *domain.AppSettings) (driving.CacheAdmin, error)
}

// Bootstrap builds Services from the resolved --config path. An empty
// path selects ~/.semdex/config.toml.
type Bootstrap func(configPath string) (*Services, error)

var (
	services  *Services
	bootstrap Bootstrap
)

var rootCmd = &cobra.Command{
	Use:   "semdex",
	Short: "Semantic search over a small Wikipedia corpus",
	Long: `semdex fetches a set of Wikipedia articles, embeds them and answers
nearest-neighbour queries against an exact L2 vector index.

The index lives in memory and is rebuilt on every run. Fetched articles are
cached in SQLite so later runs avoid the network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if services != nil || bootstrap == nil {
			return nil
		}
		s, err := bootstrap(configPath)
		if err != nil {
			return err
		}
		services = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.semdex/config.toml)")
	rootCmd.PersistentFlags().StringVar(&topicsPath, "topics", "", "YAML topic file (default ~/.semdex/corpus.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var errNotConfigured = errors.New("semdex services not configured")

func requireServices() (*Services, error) {
	if services == nil || services.Settings == nil || services.NewCorpus == nil {
		return nil, errNotConfigured
	}
	return services, nil
}

// session is a built corpus service together with the settings it was
// built from.
type session struct {
	settings *domain.AppSettings
	corpus   driving.CorpusService
	report   *domain.BuildReport
	close    func()
}

// loadTopics resolves the corpus from --topics, the default topic file or
// the built-in corpus.
func loadTopics() (domain.Corpus, error) {
	svc, err := requireServices()
	if err != nil {
		return domain.Corpus{}, err
	}
	if svc.LoadTopics == nil {
		return domain.DefaultCorpus(), nil
	}
	corpus, err := svc.LoadTopics(topicsPath)
	if err != nil {
		return domain.Corpus{}, fmt.Errorf("failed to load topics: %w", err)
	}
	return corpus, nil
}

// openSession loads settings and builds corpus.
func openSession(ctx context.Context, corpus domain.Corpus, progress func(domain.FetchOutcome)) (*session, error) {
	svc, err := requireServices()
	if err != nil {
		return nil, err
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	corpusService, closeFn, err := svc.NewCorpus(ctx, settings, progress)
	if err != nil {
		return nil, err
	}

	report, err := corpusService.Build(ctx, corpus)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("build failed: %w", err)
	}

	return &session{
		settings: settings,
		corpus:   corpusService,
		report:   report,
		close:    closeFn,
	}, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/semdex/internal/adapters/driven/ai"
	"github.com/custodia-labs/semdex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/semdex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/semdex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/semdex/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/semdex/internal/adapters/driving/cli"
	"github.com/custodia-labs/semdex/internal/connectors/wikipedia"
	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
	"github.com/custodia-labs/semdex/internal/core/services"
	"github.com/custodia-labs/semdex/internal/logger"
)

// bootstrap opens the config store and returns the services the commands
// run against. An empty configPath uses ~/.semdex/config.toml.
func bootstrap(configPath string) (*cli.Services, error) {
	var (
		store *file.ConfigStore
		err   error
	)
	if configPath != "" {
		store, err = file.OpenConfigFile(configPath)
	} else {
		store, err = file.NewConfigStore("")
	}
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	// The cache and topic file live next to the config file.
	dir := filepath.Dir(store.Path())

	return &cli.Services{
		Settings:    services.NewSettingsService(store, ai.NewConfigValidator()),
		NewCorpus:   corpusFactory(dir),
		LoadTopics:  loadTopics(dir),
		WriteTopics: writeTopics(dir),
		OpenCache:   openCache(dir),
	}, nil
}

// cachePath returns ingest.cache_path, or the default cache file in dir.
func cachePath(dir string, settings *domain.AppSettings) string {
	if settings.Ingest.CachePath != "" {
		return settings.Ingest.CachePath
	}
	return filepath.Join(dir, sqlite.DefaultFileName)
}

// openCache opens the article cache for the cache command. It opens even
// when ingest.cache is off so a stale cache can still be cleared.
func openCache(dir string) func(*domain.AppSettings) (driving.CacheAdmin, error) {
	return func(settings *domain.AppSettings) (driving.CacheAdmin, error) {
		store, err := sqlite.Open(cachePath(dir, settings))
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

// corpusFactory returns a cli.CorpusFactory that wires a pipeline from
// settings. dir holds the default article cache.
func corpusFactory(dir string) cli.CorpusFactory {
	return func(
		ctx context.Context,
		settings *domain.AppSettings,
		progress func(domain.FetchOutcome),
	) (driving.CorpusService, func(), error) {
		embedder, err := ai.CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Embedding with %s (%s)", settings.Embedding.Provider, embedder.ModelName())

		var source driven.DocumentSource = wikipedia.NewClient(wikipedia.Config{
			BaseURL:           settings.Source.BaseURL,
			UserAgent:         settings.Source.UserAgent,
			RequestsPerSecond: settings.Source.RequestsPerSecond,
			Timeout:           settings.Ingest.FetchTimeout,
		})

		closers := []func() error{embedder.Close}
		if settings.Ingest.Cache {
			cache, err := sqlite.Open(cachePath(dir, settings))
			if err != nil {
				// A broken cache only costs network round trips.
				logger.Warn("Article cache disabled: %v", err)
			} else {
				logger.Debug("Article cache: %s", cache.Path())
				source = services.NewCachedSource(source, cache)
				closers = append(closers, cache.Close)
			}
		}

		pipeline := services.NewPipeline(services.PipelineDeps{
			Source:       source,
			Embedder:     embedder,
			BuildIndex:   flat.Builder,
			NewStore:     func() driven.DocumentStore { return memory.NewDocumentStore() },
			NewRunID:     uuid.NewString,
			Progress:     progress,
			Workers:      settings.Ingest.Workers,
			FetchTimeout: settings.Ingest.FetchTimeout,
			EmbedTimeout: settings.Embedding.Timeout,
			QueryTimeout: settings.Query.Timeout,
		})

		release := func() {
			for i := len(closers) - 1; i >= 0; i-- {
				if err := closers[i](); err != nil {
					logger.Warn("Close failed: %v", err)
				}
			}
		}
		return pipeline, release, nil
	}
}

// loadTopics resolves a topic file path to a corpus. An empty path falls
// back to dir/corpus.yaml and then to the built-in corpus.
func loadTopics(dir string) func(string) (domain.Corpus, error) {
	return func(path string) (domain.Corpus, error) {
		explicit := path != ""
		if !explicit {
			path = filepath.Join(dir, file.CorpusFileName)
		}
		f, err := file.NewCorpusFile(path)
		if err != nil {
			return domain.Corpus{}, err
		}
		if !explicit && !f.Exists() {
			return domain.DefaultCorpus(), nil
		}
		corpus, err := f.Load()
		if err != nil {
			return domain.Corpus{}, err
		}
		logger.Debug("Loaded %d topics from %s", corpus.TopicCount(), f.Path())
		return corpus, nil
	}
}

// writeTopics writes a corpus to path, or to dir/corpus.yaml when path is
// empty, and returns the path written.
func writeTopics(dir string) func(string, domain.Corpus, bool) (string, error) {
	return func(path string, corpus domain.Corpus, overwrite bool) (string, error) {
		if path == "" {
			path = filepath.Join(dir, file.CorpusFileName)
		}
		f, err := file.NewCorpusFile(path)
		if err != nil {
			return "", err
		}
		if err := f.Write(corpus, overwrite); err != nil {
			return "", err
		}
		return f.Path(), nil
	}
}

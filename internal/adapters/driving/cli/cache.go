package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semdex/internal/core/ports/driving"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the article cache",
	Long: `Fetched Wikipedia articles are cached in SQLite so later builds can
skip the network. The cache lives at ingest.cache_path, or next to the
config file when that is unset.`,
	RunE: runCacheInfo,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the cache location and size",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached article",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openCache opens the cache the current settings point at. The caller
// closes it.
func openCache() (driving.CacheAdmin, error) {
	if services == nil || services.Settings == nil || services.OpenCache == nil {
		return nil, errors.New("article cache not configured")
	}
	settings, err := services.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cache, err := services.OpenCache(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cache, nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	n, err := cache.Len(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Cache:    %s\n", cache.Path())
	cmd.Printf("Articles: %d\n", n)
	if settings, err := services.Settings.Get(); err == nil && !settings.Ingest.Cache {
		cmd.Println("Caching is disabled (ingest.cache = false)")
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	n, err := cache.Purge(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	cmd.Printf("Removed %d cached articles\n", n)
	return nil
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/libris/internal/cache"
	"github.com/spf13/viper"
)

// CacheCmd groups cache management subcommands
type CacheCmd struct {
	Clear ClearCacheCmd `cmd:"" help:"Delete all cached volume responses"`
	Prune PruneCacheCmd `cmd:"" help:"Delete expired cached volume responses"`
}

// ClearCacheCmd represents the cache clear subcommand
type ClearCacheCmd struct{}

func (c *ClearCacheCmd) Run() error {
	slog.Info("Clearing cache", "database", viper.GetString("cache.dbfile"))

	store, err := cache.Shared()
	if err != nil {
		return fmt.Errorf("opening cache database: %w", err)
	}

	rows, err := store.Purge()
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	slog.Info("Cache cleared", "rows_deleted", rows)
	return nil
}

// PruneCacheCmd represents the cache prune subcommand
type PruneCacheCmd struct{}

func (c *PruneCacheCmd) Run() error {
	store, err := cache.Shared()
	if err != nil {
		return fmt.Errorf("opening cache database: %w", err)
	}

	rows, err := store.PurgeExpired()
	if err != nil {
		return fmt.Errorf("pruning cache: %w", err)
	}

	slog.Info("Cache pruned", "rows_deleted", rows)
	return nil
}

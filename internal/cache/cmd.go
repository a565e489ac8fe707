package cache

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// InvalidateCacheCmd represents the cache invalidate subcommand
type InvalidateCacheCmd struct {
	Source string `arg:"" help:"Cache source to invalidate: rawg-search, rawg-details, igdb-search, twitch-game" required:""`
}

var sourceTables = map[string]string{
	"rawg-search":  "rawg_search_cache",
	"rawg-details": "rawg_details_cache",
	"igdb-search":  "igdb_search_cache",
	"twitch-game":  "twitch_game_cache",
}

func (i *InvalidateCacheCmd) Run() error {
	cacheDB := viper.GetString("cache.dbfile")

	tableName, ok := sourceTables[i.Source]
	if !ok {
		return fmt.Errorf("invalid cache source '%s'; valid sources are: rawg-search, rawg-details, igdb-search, twitch-game", i.Source)
	}

	slog.Info("Invalidating cache", "source", i.Source, "database", cacheDB)

	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	rowsDeleted, err := cacheInstance.InvalidateSource(tableName)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Cache invalidated", "source", i.Source, "rows_deleted", rowsDeleted)
	return nil
}

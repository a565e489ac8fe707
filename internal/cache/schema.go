package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// RAWGSearchCacheSchema defines the schema for RAWG catalog search results
const RAWGSearchCacheSchema = `
CREATE TABLE IF NOT EXISTS rawg_search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_rawg_search_cached_at ON rawg_search_cache(cached_at);
`

// RAWGDetailsCacheSchema defines the schema for RAWG game detail records
const RAWGDetailsCacheSchema = `
CREATE TABLE IF NOT EXISTS rawg_details_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_rawg_details_cached_at ON rawg_details_cache(cached_at);
`

// IGDBSearchCacheSchema defines the schema for IGDB search results
const IGDBSearchCacheSchema = `
CREATE TABLE IF NOT EXISTS igdb_search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_igdb_search_cached_at ON igdb_search_cache(cached_at);
`

// TwitchGameCacheSchema defines the schema for Twitch game-name → game-id mappings.
// Only the id mapping is cached; live viewer counts are never cached.
const TwitchGameCacheSchema = `
CREATE TABLE IF NOT EXISTS twitch_game_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_twitch_game_cached_at ON twitch_game_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	RAWGSearchCacheSchema,
	RAWGDetailsCacheSchema,
	IGDBSearchCacheSchema,
	TwitchGameCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"rawg_search_cache":  true,
	"rawg_details_cache": true,
	"igdb_search_cache":  true,
	"twitch_game_cache":  true,
}

package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"gamescout/internal/cache"
	"gamescout/internal/config"
)

// CLI represents the complete command structure for the gamescout application
type CLI struct {
	// Global flags
	ListenAddr  string `help:"Address for the HTTP server to listen on" default:":8000"`
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	QuotaFile   string `help:"Path to the RAWG quota ledger file" default:"./rawg_requests.json"`
	QuotaLimit  int    `help:"Monthly RAWG API request limit" default:"20000"`

	Serve ServeCmd `cmd:"" default:"1" help:"Run the recommendation HTTP server"`
	Quota QuotaCmd `cmd:"" help:"Show RAWG API quota usage"`
	Cache CacheCmd `cmd:"" help:"Cache maintenance"`
}

// CacheCmd groups the cache maintenance subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached responses for a source"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("gamescout"),
		kong.Description("A hybrid game recommendation service combining AI title generation with catalog and popularity data."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("listen_addr", ":8000")
	viper.SetDefault("quota.file", "./rawg_requests.json")
	viper.SetDefault("quota.monthly_limit", 20000)
	viper.SetDefault("cache.dbfile", "./cache.db")

	// Enable environment variable support
	viper.AutomaticEnv()
	bindEnv("OpenAIAPIKey", "OPENAI_API_KEY")
	bindEnv("RAWGAPIKey", "RAWG_API_KEY")
	bindEnv("TwitchClientID", "TWITCH_CLIENT_ID")
	bindEnv("TwitchClientSecret", "TWITCH_CLIENT_SECRET")
	bindEnv("IGDBClientID", "IGDB_CLIENT_ID")
	bindEnv("IGDBClientSecret", "IGDB_CLIENT_SECRET")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("No config file found, using defaults and environment")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func bindEnv(key, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		slog.Error("Failed to bind environment variable", "env", env, "error", err)
	}
}

func updateGlobalConfig(cli *CLI) {
	viper.Set("listen_addr", cli.ListenAddr)
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("quota.file", cli.QuotaFile)
	viper.Set("quota.monthly_limit", cli.QuotaLimit)
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}

// shutdownSignal delivers interrupt and termination signals.
func shutdownSignal() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	return sigCh
}

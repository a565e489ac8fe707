package cmd

import (
	"log/slog"

	"github.com/spf13/viper"

	"gamescout/internal/config"
	"gamescout/internal/igdb"
	"gamescout/internal/oauth"
	"gamescout/internal/quota"
	"gamescout/internal/rawg"
	"gamescout/internal/recommend"
	"gamescout/internal/server"
	"gamescout/internal/titlegen"
	"gamescout/internal/twitch"
)

// ServeCmd represents the serve command
type ServeCmd struct{}

// Run wires the upstream clients into the pipeline and serves the API until
// a shutdown signal arrives. Missing credentials are reported but do not
// block startup; affected endpoints degrade at request time instead.
func (s *ServeCmd) Run() error {
	if missing := config.MissingKeys(); len(missing) > 0 {
		slog.Warn("Starting with missing credentials, some endpoints will be degraded", "missing", missing)
	}

	generator := titlegen.NewGenerator(config.OpenAIAPIKey)
	catalog := rawg.NewClient(config.RAWGAPIKey)

	twitchTokens := oauth.NewTokenSource("Twitch", config.TwitchClientID, config.TwitchClientSecret)
	popularity := twitch.NewClient(config.TwitchClientID, twitchTokens)

	igdbTokens := oauth.NewTokenSource("IGDB", config.IGDBClientID, config.IGDBClientSecret)
	index := igdb.NewClient(config.IGDBClientID, igdbTokens)

	ledger := quota.NewLedger(viper.GetString("quota.file"), viper.GetInt("quota.monthly_limit"))

	recommender := recommend.NewRecommender(generator, catalog, index, popularity, ledger)

	addr := viper.GetString("listen_addr")
	srv := server.New(addr)
	srv.RegisterRoutes(recommender, index)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-shutdownSignal():
		slog.Info("Shutting down", "signal", sig.String())
		return srv.Shutdown()
	}
}

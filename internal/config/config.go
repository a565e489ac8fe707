package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OpenAIAPIKey is the API key for the OpenAI chat completions endpoint
	OpenAIAPIKey string
	// RAWGAPIKey is the API key for the RAWG games catalog
	RAWGAPIKey string
	// TwitchClientID is the Twitch application client ID
	TwitchClientID string
	// TwitchClientSecret is the Twitch application client secret
	TwitchClientSecret string
	// IGDBClientID is the IGDB client ID (falls back to the Twitch one)
	IGDBClientID string
	// IGDBClientSecret is the IGDB client secret (falls back to the Twitch one)
	IGDBClientSecret string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("listen_addr", ":8000")
	viper.SetDefault("quota.file", "./rawg_requests.json")
	viper.SetDefault("quota.monthly_limit", 20000)

	// Get values from viper
	OpenAIAPIKey = viper.GetString("OpenAIAPIKey")
	RAWGAPIKey = viper.GetString("RAWGAPIKey")
	TwitchClientID = viper.GetString("TwitchClientID")
	TwitchClientSecret = viper.GetString("TwitchClientSecret")

	// IGDB shares Twitch application credentials unless overridden
	IGDBClientID = viper.GetString("IGDBClientID")
	if IGDBClientID == "" {
		IGDBClientID = TwitchClientID
	}
	IGDBClientSecret = viper.GetString("IGDBClientSecret")
	if IGDBClientSecret == "" {
		IGDBClientSecret = TwitchClientSecret
	}
}

// MissingKeys returns the names of required credentials that are not set.
// Used by the health endpoint to report readiness.
func MissingKeys() []string {
	var missing []string
	if OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if RAWGAPIKey == "" {
		missing = append(missing, "RAWG_API_KEY")
	}
	if TwitchClientID == "" {
		missing = append(missing, "TWITCH_CLIENT_ID")
	}
	if TwitchClientSecret == "" {
		missing = append(missing, "TWITCH_CLIENT_SECRET")
	}
	return missing
}

package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyRedditUserAgent, "databridge-mcp/1.0 (by /u/databridge)")
	viper.SetDefault(KeyRedditBaseURL, "https://www.reddit.com")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyHTTPTimeout, "30s")
}

func RedditClientID() string     { return viper.GetString(KeyRedditClientID) }
func RedditClientSecret() string { return viper.GetString(KeyRedditClientSecret) }
func RedditUserAgent() string    { return viper.GetString(KeyRedditUserAgent) }
func RedditBaseURL() string      { return viper.GetString(KeyRedditBaseURL) }
func BigQueryProject() string    { return viper.GetString(KeyBigQueryProject) }
func BigQueryDataset() string    { return viper.GetString(KeyBigQueryDataset) }
func BigQueryCredFile() string   { return viper.GetString(KeyBigQueryCredFile) }
func LogLevel() string           { return viper.GetString(KeyLogLevel) }

// HTTPTimeout returns the outbound HTTP client timeout, falling back to 30s
// when the configured value does not parse.
func HTTPTimeout() time.Duration {
	raw := strings.TrimSpace(viper.GetString(KeyHTTPTimeout))
	if raw == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

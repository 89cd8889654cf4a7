package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jmartel/databridge-mcp/internal/bigquery"
	"github.com/jmartel/databridge-mcp/internal/config"
	"github.com/jmartel/databridge-mcp/internal/logging"
	"github.com/jmartel/databridge-mcp/internal/mcp/tools"
	"github.com/jmartel/databridge-mcp/internal/reddit"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	BigQuery     *bigquery.Provider
}

func DefaultConfig() Config {
	baseLogger := logging.ForLevel(config.LogLevel())

	redditClient, err := reddit.NewClient(reddit.ClientConfig{
		BaseURL:      config.RedditBaseURL(),
		UserAgent:    config.RedditUserAgent(),
		ClientID:     config.RedditClientID(),
		ClientSecret: config.RedditClientSecret(),
		Timeout:      config.HTTPTimeout(),
	})
	if err != nil {
		log.Fatalf("failed to init reddit client: %v", err)
	}
	redditService := reddit.NewService(redditClient, logging.New(baseLogger.WithName("reddit")))

	bqConfig := bigquery.Config{
		Project:         config.BigQueryProject(),
		Dataset:         config.BigQueryDataset(),
		CredentialsFile: config.BigQueryCredFile(),
	}
	provider := bigquery.NewProvider(bqConfig)
	runner := bigquery.NewGCPRunner(provider, bqConfig.Dataset)
	bqService := bigquery.NewService(runner, bqConfig.Project, bqConfig.Dataset, logging.New(baseLogger.WithName("bigquery")))

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"get_subreddit_posts": &tools.GetSubredditPostsHandler{Service: redditService},
			"get_post_details":    &tools.GetPostDetailsHandler{Service: redditService},
			"search_reddit":       &tools.SearchRedditHandler{Service: redditService},
			"get_subreddit_info":  &tools.GetSubredditInfoHandler{Service: redditService},
			"query_bigquery":      &tools.QueryBigQueryHandler{Service: bqService},
			"get_table_schema":    &tools.GetTableSchemaHandler{Service: bqService},
			"list_tables":         &tools.ListTablesHandler{Service: bqService},
			"get_dataset_info":    &tools.GetDatasetInfoHandler{Service: bqService},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		BigQuery: provider,
	}
}

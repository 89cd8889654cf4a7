package mcp

import (
	"context"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jmartel/databridge-mcp/internal/bigquery"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	BQ      *bigquery.Provider
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"databridge-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools with their proper schemas using mcp-go builder pattern
	toolDefinitions := map[string]mcp.Tool{
		"get_subreddit_posts": mcp.NewTool("get_subreddit_posts",
			mcp.WithDescription("Fetch posts from a specific subreddit, sorted and limited as requested. Returns post metadata as JSON."),
			mcp.WithString("subreddit_name",
				mcp.Required(),
				mcp.Description("Name of the subreddit (without r/)"),
			),
			mcp.WithString("sort_type",
				mcp.Description("Sort type (default: hot)"),
				mcp.Enum("hot", "new", "top", "rising"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Number of posts to fetch (default: 10, max 100)"),
			),
			mcp.WithString("time_filter",
				mcp.Description("Time filter, only applies to 'top' sort (default: day)"),
				mcp.Enum("hour", "day", "week", "month", "year", "all"),
			),
		),
		"get_post_details": mcp.NewTool("get_post_details",
			mcp.WithDescription("Get detailed information about a specific Reddit post, optionally including its top comments."),
			mcp.WithString("post_id",
				mcp.Required(),
				mcp.Description("Reddit post ID"),
			),
			mcp.WithBoolean("include_comments",
				mcp.Description("Whether to include top comments (default: false)"),
			),
			mcp.WithNumber("comment_limit",
				mcp.Description("Number of top comments to include (default: 10)"),
			),
		),
		"search_reddit": mcp.NewTool("search_reddit",
			mcp.WithDescription("Search Reddit across all communities for posts matching a query."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search query"),
			),
			mcp.WithString("sort",
				mcp.Description("Sort results (default: relevance)"),
				mcp.Enum("relevance", "hot", "top", "new", "comments"),
			),
			mcp.WithString("time_filter",
				mcp.Description("Time filter (default: all)"),
				mcp.Enum("hour", "day", "week", "month", "year", "all"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Number of results to return (default: 10)"),
			),
		),
		"get_subreddit_info": mcp.NewTool("get_subreddit_info",
			mcp.WithDescription("Get information about a subreddit: title, description, subscriber counts, and metadata."),
			mcp.WithString("subreddit_name",
				mcp.Required(),
				mcp.Description("Name of the subreddit (without r/)"),
			),
		),
		"query_bigquery": mcp.NewTool("query_bigquery",
			mcp.WithDescription("Execute any BigQuery SQL statement (SELECT, INSERT, UPDATE, DELETE, CREATE, DROP, etc.). Tables in the default dataset can be referenced by bare name."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("SQL statement to execute"),
			),
		),
		"get_table_schema": mcp.NewTool("get_table_schema",
			mcp.WithDescription("Get detailed schema and metadata for a table in the default dataset."),
			mcp.WithString("table_name",
				mcp.Required(),
				mcp.Description("Name of the table (without project/dataset prefix)"),
			),
		),
		"list_tables": mcp.NewTool("list_tables",
			mcp.WithDescription("List all tables in the default dataset with row counts and sizes."),
		),
		"get_dataset_info": mcp.NewTool("get_dataset_info",
			mcp.WithDescription("Get metadata and aggregate statistics for the default dataset."),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		BQ:      cfg.BigQuery,
	}
}

// ServeStdio runs the server over stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCP)
}

func (s *Server) Close() {
	if s.BQ != nil {
		if err := s.BQ.Close(); err != nil {
			log.Printf("error closing BigQuery client: %v", err)
		}
	}
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmartel/databridge-mcp/internal/reddit"
)

type SearchService interface {
	Search(ctx context.Context, query, sort, timeFilter string, limit int) (reddit.SearchListing, error)
}

type SearchRedditHandler struct {
	Service SearchService
}

func (h *SearchRedditHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query := stringArg(args, "query", "")
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	sort := stringArg(args, "sort", "relevance")
	timeFilter := stringArg(args, "time_filter", "all")
	limit := intArg(args, "limit", 10)

	listing, err := h.Service.Search(ctx, query, sort, timeFilter, limit)
	if err != nil {
		return mcp.NewToolResultText(errorPayload(fmt.Sprintf("Search failed: %s", err))), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(listing))), nil
}

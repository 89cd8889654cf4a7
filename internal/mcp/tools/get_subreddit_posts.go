package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmartel/databridge-mcp/internal/reddit"
)

type SubredditPostsService interface {
	SubredditPosts(ctx context.Context, subreddit, sortType string, limit int, timeFilter string) (reddit.PostListing, error)
}

type GetSubredditPostsHandler struct {
	Service SubredditPostsService
}

func (h *GetSubredditPostsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	subreddit := stringArg(args, "subreddit_name", "")
	if strings.TrimSpace(subreddit) == "" {
		return mcp.NewToolResultError("subreddit_name parameter is required"), nil
	}
	sortType := stringArg(args, "sort_type", "hot")
	limit := intArg(args, "limit", 10)
	timeFilter := stringArg(args, "time_filter", "day")

	listing, err := h.Service.SubredditPosts(ctx, subreddit, sortType, limit, timeFilter)
	if errors.Is(err, reddit.ErrInvalidSort) {
		return mcp.NewToolResultText(errorPayload("Invalid sort_type. Use 'hot', 'new', 'top', or 'rising'")), nil
	}
	if err != nil {
		return mcp.NewToolResultText(errorPayload(fmt.Sprintf("Failed to fetch posts: %s", err))), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(listing))), nil
}

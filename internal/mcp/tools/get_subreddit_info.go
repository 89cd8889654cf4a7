package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmartel/databridge-mcp/internal/reddit"
)

type SubredditInfoService interface {
	SubredditInfo(ctx context.Context, subreddit string) (reddit.Subreddit, error)
}

type GetSubredditInfoHandler struct {
	Service SubredditInfoService
}

func (h *GetSubredditInfoHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	subreddit := stringArg(args, "subreddit_name", "")
	if strings.TrimSpace(subreddit) == "" {
		return mcp.NewToolResultError("subreddit_name parameter is required"), nil
	}

	info, err := h.Service.SubredditInfo(ctx, subreddit)
	if err != nil {
		return mcp.NewToolResultText(errorPayload(fmt.Sprintf("Failed to fetch subreddit info: %s", err))), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(info))), nil
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmartel/databridge-mcp/internal/reddit"
)

type PostDetailsService interface {
	PostDetails(ctx context.Context, postID string, includeComments bool, commentLimit int) (reddit.PostDetails, error)
}

type GetPostDetailsHandler struct {
	Service PostDetailsService
}

func (h *GetPostDetailsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	postID := stringArg(args, "post_id", "")
	if strings.TrimSpace(postID) == "" {
		return mcp.NewToolResultError("post_id parameter is required"), nil
	}
	includeComments := boolArg(args, "include_comments")
	commentLimit := intArg(args, "comment_limit", 10)

	details, err := h.Service.PostDetails(ctx, postID, includeComments, commentLimit)
	if err != nil {
		return mcp.NewToolResultText(errorPayload(fmt.Sprintf("Failed to fetch post details: %s", err))), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(details))), nil
}

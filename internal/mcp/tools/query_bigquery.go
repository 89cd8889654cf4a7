package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

type QueryService interface {
	Query(ctx context.Context, query string) (string, error)
}

type QueryBigQueryHandler struct {
	Service QueryService
}

func (h *QueryBigQueryHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := stringArg(req.GetArguments(), "query", "")
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	out, err := h.Service.Query(ctx, query)
	if err != nil {
		return mcp.NewToolResultText("Query failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

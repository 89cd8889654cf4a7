package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

type TableListService interface {
	ListTables(ctx context.Context) (string, error)
}

type ListTablesHandler struct {
	Service TableListService
}

func (h *ListTablesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.Service.ListTables(ctx)
	if err != nil {
		return mcp.NewToolResultText("Error listing tables: " + err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

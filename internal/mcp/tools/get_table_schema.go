package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

type TableSchemaService interface {
	TableSchema(ctx context.Context, tableID string) (string, error)
}

type GetTableSchemaHandler struct {
	Service TableSchemaService
}

func (h *GetTableSchemaHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tableName := stringArg(req.GetArguments(), "table_name", "")
	if strings.TrimSpace(tableName) == "" {
		return mcp.NewToolResultError("table_name parameter is required"), nil
	}

	out, err := h.Service.TableSchema(ctx, tableName)
	if err != nil {
		return mcp.NewToolResultText("Error getting table schema: " + err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

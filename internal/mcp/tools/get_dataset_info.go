package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

type DatasetInfoService interface {
	DatasetInfo(ctx context.Context) (string, error)
}

type GetDatasetInfoHandler struct {
	Service DatasetInfoService
}

func (h *GetDatasetInfoHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.Service.DatasetInfo(ctx)
	if err != nil {
		return mcp.NewToolResultText("Error getting dataset info: " + err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/prtrack/internal/records"
)

func (h *handlers) recentRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	recs, err := h.src.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	// Same shape the UI shows on its dashboard: newest five.
	view := records.BuildView(recs, records.ViewParams{})

	data, err := json.Marshal(map[string]any{
		"total":  len(recs),
		"recent": view.Entries,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) milestoneBoard(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	milestones, err := h.src.ListMilestones(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(milestones)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

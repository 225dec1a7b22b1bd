package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPublicTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_player",
			mcp.WithDescription("Get cross-tournament stats for one address"),
			mcp.WithString("address", mcp.Required(), mcp.Description("Player address")),
		),
		s.handleGetPlayer,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_leaderboard",
			mcp.WithDescription("Top 10 players by earnings and by tournaments played"),
		),
		s.handleGetLeaderboard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_statistics",
			mcp.WithDescription("Platform totals"),
		),
		s.handleGetStatistics,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_payouts",
			mcp.WithDescription("List payouts, most recent first"),
			mcp.WithNumber("limit", mcp.Description("Page size, default 50, max 500")),
			mcp.WithNumber("offset", mcp.Description("Page offset, default 0")),
		),
		s.handleListPayouts,
	)
}

func (s *Server) handleGetPlayer(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := request.RequireString("address")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	return toolResult(s.mgr.PlayerStats(address)), nil
}

func (s *Server) handleGetLeaderboard(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.mgr.Leaderboard()), nil
}

func (s *Server) handleGetStatistics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.mgr.Statistics()), nil
}

func (s *Server) handleListPayouts(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, offset := clampPagination(request.GetInt("limit", defaultPageLimit), request.GetInt("offset", 0), maxPageLimit)
	items := s.mgr.Payouts()
	return toolResult(map[string]any{
		"items":  page(items, limit, offset),
		"total":  len(items),
		"limit":  limit,
		"offset": offset,
	}), nil
}

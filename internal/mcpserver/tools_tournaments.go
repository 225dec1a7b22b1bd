package mcpserver

import (
	"context"

	"tournament-flow/internal/tournament"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTournamentTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_tournaments",
			mcp.WithDescription("List tournaments, newest first"),
			mcp.WithString("status", mcp.Description("all|active|completed, default all")),
			mcp.WithNumber("limit", mcp.Description("Page size, default 50, max 500")),
			mcp.WithNumber("offset", mcp.Description("Page offset, default 0")),
		),
		s.handleListTournaments,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_tournament",
			mcp.WithDescription("Get one tournament with roster and bracket"),
			mcp.WithString("tournament_id", mcp.Required(), mcp.Description("Tournament id")),
		),
		s.handleGetTournament,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"create_tournament",
			mcp.WithDescription("Create a tournament that opens for registration"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
			mcp.WithNumber("max_players", mcp.Required(), mcp.Description("Roster size, at least 2; the tournament starts when full")),
			mcp.WithNumber("entry_fee", mcp.Description("Entry fee added to the prize pool per player, default 0")),
			mcp.WithString("game_type", mcp.Description("Game type tag")),
			mcp.WithString("creator", mcp.Description("Creator address")),
			mcp.WithString("tournament_id", mcp.Description("Optional caller-chosen id")),
		),
		s.handleCreateTournament,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"register_player",
			mcp.WithDescription("Register a player; the registration that fills the roster starts the tournament"),
			mcp.WithString("tournament_id", mcp.Required(), mcp.Description("Tournament id")),
			mcp.WithString("address", mcp.Required(), mcp.Description("Player address")),
			mcp.WithString("username", mcp.Description("Display name, defaults to Player_ plus the last 4 address characters")),
		),
		s.handleRegisterPlayer,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"report_match",
			mcp.WithDescription("Record the winner of a bracket match; deciding the final completes the tournament"),
			mcp.WithString("tournament_id", mcp.Required(), mcp.Description("Tournament id")),
			mcp.WithNumber("round", mcp.Required(), mcp.Description("1-based round number")),
			mcp.WithNumber("order", mcp.Required(), mcp.Description("1-based match order within the round")),
			mcp.WithString("winner", mcp.Required(), mcp.Description("Winner address")),
		),
		s.handleReportMatch,
	)
}

func (s *Server) handleListTournaments(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := normalizeStatus(request.GetString("status", ""))
	if !isAllowedStatus(status) {
		return toolError("invalid_request", "status must be all|active|completed"), nil
	}
	limit, offset := clampPagination(request.GetInt("limit", defaultPageLimit), request.GetInt("offset", 0), maxPageLimit)

	var items []*tournament.Tournament
	switch status {
	case "active":
		items = s.mgr.ActiveTournaments()
	case "completed":
		items = s.mgr.CompletedTournaments()
	default:
		items = s.mgr.Tournaments()
	}
	return toolResult(map[string]any{
		"items":  page(items, limit, offset),
		"total":  len(items),
		"limit":  limit,
		"offset": offset,
	}), nil
}

func (s *Server) handleGetTournament(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("tournament_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	t, err := s.mgr.Tournament(id)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(t), nil
}

func (s *Server) handleCreateTournament(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	maxPlayers, err := request.RequireInt("max_players")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	t, err := s.mgr.CreateTournament(ctx, tournament.CreateInput{
		ID:         request.GetString("tournament_id", ""),
		Name:       name,
		Creator:    request.GetString("creator", ""),
		MaxPlayers: maxPlayers,
		EntryFee:   request.GetFloat("entry_fee", 0),
		GameType:   request.GetString("game_type", ""),
	})
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(t), nil
}

func (s *Server) handleRegisterPlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("tournament_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	address, err := request.RequireString("address")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	t, err := s.mgr.RegisterPlayer(ctx, id, tournament.PlayerInput{
		Address:  address,
		Username: request.GetString("username", ""),
	})
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(t), nil
}

func (s *Server) handleReportMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("tournament_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	round, err := request.RequireInt("round")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	order, err := request.RequireInt("order")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	winner, err := request.RequireString("winner")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	rep, err := s.mgr.ReportMatchResult(ctx, id, round, order, winner)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(rep), nil
}

package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"tournament-flow/internal/tournament"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	bracketURIPrefix = "tournament://"
	bracketURISuffix = "/bracket"
)

type Server struct {
	mgr *tournament.Manager

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(mgr *tournament.Manager) *Server {
	mcpSrv := server.NewMCPServer(
		"tournament-flow",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	)
	s := &Server{
		mgr:        mgr,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerTournamentTools()
	s.registerPublicTools()
	s.registerResources()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			bracketURIPrefix+"{id}"+bracketURISuffix,
			"tournament_bracket",
			mcp.WithTemplateDescription("Bracket rounds and matches of a started tournament"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.readBracket,
	)
}

func (s *Server) readBracket(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	raw := request.Params.URI
	if !strings.HasPrefix(raw, bracketURIPrefix) || !strings.HasSuffix(raw, bracketURISuffix) {
		return nil, nil
	}
	id := strings.TrimSuffix(strings.TrimPrefix(raw, bracketURIPrefix), bracketURISuffix)
	if id == "" {
		return nil, nil
	}
	t, err := s.mgr.Tournament(id)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(map[string]any{
		"tournament_id": t.ID,
		"status":        t.Status,
		"bracket":       t.Bracket,
	})
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      raw,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}

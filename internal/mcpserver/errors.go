package mcpserver

import (
	"errors"
	"fmt"

	"tournament-flow/internal/tournament"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolResult(data any) *mcp.CallToolResult {
	return mcp.NewToolResultStructuredOnly(data)
}

func toolError(code, message string) *mcp.CallToolResult {
	result := mcp.NewToolResultStructured(
		map[string]any{
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
		fmt.Sprintf("%s: %s", code, message),
	)
	result.IsError = true
	return result
}

var domainCodes = []error{
	tournament.ErrNotFound,
	tournament.ErrInvalidRequest,
	tournament.ErrFull,
	tournament.ErrDuplicateRegistration,
	tournament.ErrWinnerNotRegistered,
	tournament.ErrInvalidState,
	tournament.ErrNotEnoughPlayers,
	tournament.ErrMatchNotFound,
	tournament.ErrMatchNotReady,
	tournament.ErrMatchDecided,
	tournament.ErrWinnerNotInMatch,
}

// mapDomainError uses the sentinel's text as the stable tool error code.
func mapDomainError(err error) *mcp.CallToolResult {
	if err == nil {
		return toolError("internal_error", "unknown error")
	}
	for _, sentinel := range domainCodes {
		if errors.Is(err, sentinel) {
			return toolError(sentinel.Error(), err.Error())
		}
	}
	return toolError("internal_error", err.Error())
}

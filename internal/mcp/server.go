package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/assistant"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/handlers"
	"github.com/sirupsen/logrus"
)

const (
	serverName    = "Sleeper Draft Assistant"
	serverVersion = "1.0.0"
)

type toolHandler func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error)

type route struct {
	tool   mcp.Tool
	handle toolHandler
}

func routes(service *assistant.Service, logger *logrus.Logger) []route {
	draftHandler := handlers.NewDraftHandler(service, logger)
	rankingsHandler := handlers.NewRankingsHandler(service, logger)

	return []route{
		{draftHandler.LeagueProfileTool(), draftHandler.HandleLeagueProfile},
		{draftHandler.UnavailablePlayersTool(), draftHandler.HandleUnavailablePlayers},
		{draftHandler.BestAvailableTool(), draftHandler.HandleBestAvailable},
		{draftHandler.VBDRankingsTool(), draftHandler.HandleVBDRankings},
		{draftHandler.TeamNeedsTool(), draftHandler.HandleTeamNeeds},
		{draftHandler.RecommendationsTool(), draftHandler.HandleRecommendations},
		{draftHandler.DraftSeatTool(), draftHandler.HandleDraftSeat},
		{draftHandler.UserLeaguesTool(), draftHandler.HandleUserLeagues},
		{rankingsHandler.MatchPlayerTool(), rankingsHandler.HandleMatchPlayer},
		{rankingsHandler.ListRankingsTool(), rankingsHandler.HandleListRankings},
		{rankingsHandler.RefreshRankingsTool(), rankingsHandler.HandleRefreshRankings},
		{rankingsHandler.UploadRankingTool(), rankingsHandler.HandleUploadRanking},
		{rankingsHandler.DeleteRankingTool(), rankingsHandler.HandleDeleteRanking},
	}
}

// NewDraftMCPServer registers every draft tool on a stdio MCP server.
func NewDraftMCPServer(service *assistant.Service, logger *logrus.Logger) *server.DefaultServer {
	s := server.NewDefaultServer(serverName, serverVersion)
	if s == nil {
		logger.Error("Failed to create MCP server instance")
		return nil
	}

	logger.Info("MCP server instance created successfully")

	registered := routes(service, logger)
	tools := make([]mcp.Tool, 0, len(registered))
	byName := make(map[string]toolHandler, len(registered))
	for _, r := range registered {
		tools = append(tools, r.tool)
		byName[r.tool.Name] = r.handle
	}

	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		logger.WithField("tools_count", len(tools)).Info("Listing available tools")

		return &mcp.ListToolsResult{
			Tools: tools,
		}, nil
	})

	s.HandleCallTool(func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		logger.WithFields(logrus.Fields{
			"tool": name,
			"args": arguments,
		}).Info("Tool called")

		handle, ok := byName[name]
		if !ok {
			logger.WithField("tool", name).Warn("Unknown tool called")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Type: "text",
						Text: "Unknown tool: " + name,
					},
				},
				IsError: true,
			}, nil
		}
		if arguments == nil {
			arguments = map[string]interface{}{}
		}
		return handle(ctx, arguments)
	})

	logger.WithField("tools_count", len(tools)).Info("All tools registered successfully")
	return s
}
